package detserver

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"

	"sightcast/detection"
)

// Detector produces detections for one encoded video frame. The real
// deployment plugs an inference model in here; DummyDetector keeps the
// server runnable without one.
type Detector interface {
	Detect(frame []byte) ([]detection.Detection, error)
}

var palette = []string{"red", "lime", "blue", "yellow", "cyan", "magenta"}

// DummyDetector fabricates deterministic detections from the frame
// dimensions: one centered box plus one corner box, cycling through a
// fixed palette so the overlay visibly changes per frame.
type DummyDetector struct {
	frames int
}

func (d *DummyDetector) Detect(frame []byte) ([]detection.Detection, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("detserver: decode frame: %w", err)
	}
	n := d.frames
	d.frames++
	w, h := cfg.Width, cfg.Height
	return []detection.Detection{
		{
			Box:   detection.Box{X: w / 4, Y: h / 4, W: w / 2, H: h / 2},
			Color: palette[n%len(palette)],
		},
		{
			Box:   detection.Box{X: (n * 13) % (w / 2), Y: (n * 7) % (h / 2), W: w / 8, H: h / 8},
			Color: palette[(n+1)%len(palette)],
		},
	}, nil
}
