package playback

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// PatternPlayer is a synthetic Player that renders a moving gradient
// pattern. It lets the client run end to end without a real decoder,
// the same way a dummy driver stands in for real capture hardware.
type PatternPlayer struct {
	width  int
	height int

	mu     sync.Mutex
	active bool
	tick   int
}

// NewPatternPlayer creates an inactive pattern source with the given
// native frame size. Non-positive dimensions fall back to 640x640.
func NewPatternPlayer(width, height int) *PatternPlayer {
	if width <= 0 || height <= 0 {
		width, height = 640, 640
	}
	return &PatternPlayer{width: width, height: height}
}

func (p *PatternPlayer) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *PatternPlayer) Play() {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()
}

// Stop halts playback. Subsequent captures report unavailable.
func (p *PatternPlayer) Stop() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
}

func (p *PatternPlayer) FrameSize() (int, int) {
	return p.width, p.height
}

// CurrentPixels renders the pattern at the requested resolution. Each
// call advances the pattern by one step so consecutive frames differ.
func (p *PatternPlayer) CurrentPixels(width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("playback: invalid capture size")
	}
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return nil, errors.New("playback: not active")
	}
	tick := p.tick
	p.tick++
	p.mu.Unlock()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x + tick) * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8(tick * 7),
				A: 255,
			})
		}
	}
	return img, nil
}
