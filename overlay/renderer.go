package overlay

import (
	"strings"

	"sightcast/detection"

	"pkt.systems/pslog"
)

// DefaultOpacity is the fill alpha applied to every detection
// rectangle, independent of the parsed color's own alpha.
const DefaultOpacity = 0.6

// Renderer projects detection batches onto a Surface. Each applied
// batch fully replaces the previous one; the overlay is never a mix of
// stale and fresh elements.
type Renderer struct {
	surface Surface
	opacity float64
	log     pslog.Logger
}

// NewRenderer wires a renderer to its surface. opacity outside (0, 1]
// falls back to DefaultOpacity.
func NewRenderer(surface Surface, opacity float64, log pslog.Logger) *Renderer {
	if opacity <= 0 || opacity > 1 {
		opacity = DefaultOpacity
	}
	return &Renderer{surface: surface, opacity: opacity, log: log}
}

// MapBox projects a video-space box into surface space. Pure per-axis
// linear scaling, top-left origin on both sides; the bottom-left
// anchor flip happens when elements are placed, not here.
func MapBox(b detection.Box, videoW, videoH, surfaceW, surfaceH int) (x, y, w, h float64) {
	scaleX := float64(surfaceW) / float64(videoW)
	scaleY := float64(surfaceH) / float64(videoH)
	return float64(b.X) * scaleX, float64(b.Y) * scaleY, float64(b.W) * scaleX, float64(b.H) * scaleY
}

// ApplyBatch clears the detection layer and draws one rectangle+label
// pair per detection. videoW/videoH are the source frame dimensions the
// boxes refer to. A detection whose surface resources fail to
// instantiate is skipped with an error log; the rest of the batch still
// applies.
func (r *Renderer) ApplyBatch(batch detection.Batch, videoW, videoH int) {
	r.surface.ClearOverlay()
	if len(batch.Detections) == 0 {
		return
	}
	if videoW <= 0 || videoH <= 0 {
		r.log.Error("batch dropped: invalid video frame size", "width", videoW, "height", videoH)
		return
	}
	surfaceW, surfaceH := r.surface.Size()

	for _, d := range batch.Detections {
		x, y, w, h := MapBox(d.Box, videoW, videoH, surfaceW, surfaceH)
		// video y runs down from the top, the surface anchors at the
		// bottom-left, so the vertical axis flips here
		pos := Point{X: x, Y: float64(surfaceH) - y - h}

		fill, known := ParseColor(d.Color)
		if !known {
			r.log.Trace("color string not a color, using default", "color", d.Color)
		}
		fill.A = uint8(r.opacity*255 + 0.5)

		if _, err := r.surface.AddRectangle(pos, Point{X: w, Y: h}, fill); err != nil {
			r.log.Error("rectangle skipped", "color", d.Color, "err", err)
			continue
		}
		label := fill
		label.A = 255
		if _, err := r.surface.AddLabel(strings.ToUpper(d.Color), pos, label); err != nil {
			r.log.Error("label skipped", "color", d.Color, "err", err)
		}
	}
}
