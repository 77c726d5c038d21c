package overlay

import (
	"image/color"
	"sync"

	"pkt.systems/pslog"
)

// LogSurface is a Surface that writes every draw to the structured log
// instead of a real compositor. It lets the client run headless and
// keeps the renderer testable without a rendering environment.
type LogSurface struct {
	width  int
	height int
	log    pslog.Logger

	mu       sync.Mutex
	elements int
}

func NewLogSurface(width, height int, log pslog.Logger) *LogSurface {
	return &LogSurface{width: width, height: height, log: log}
}

func (s *LogSurface) Size() (int, int) { return s.width, s.height }

func (s *LogSurface) ClearOverlay() {
	s.mu.Lock()
	n := s.elements
	s.elements = 0
	s.mu.Unlock()
	if n > 0 {
		s.log.Trace("overlay cleared", "elements", n)
	}
}

func (s *LogSurface) AddRectangle(pos, size Point, fill color.NRGBA) (Handle, error) {
	s.mu.Lock()
	s.elements++
	s.mu.Unlock()
	s.log.Info("rectangle",
		"x", pos.X, "y", pos.Y, "w", size.X, "h", size.Y,
		"r", fill.R, "g", fill.G, "b", fill.B, "a", fill.A)
	return nopHandle{}, nil
}

func (s *LogSurface) AddLabel(text string, anchor Point, fill color.NRGBA) (Handle, error) {
	s.mu.Lock()
	s.elements++
	s.mu.Unlock()
	s.log.Info("label", "text", text, "x", anchor.X, "y", anchor.Y)
	return nopHandle{}, nil
}

type nopHandle struct{}

func (nopHandle) Detach() {}
