package agent

import (
	"context"
	"errors"
	"time"

	"sightcast/capturer"
	"sightcast/session"
)

// sendLoop captures and sends one frame per tick while playback stays
// active. Playback going inactive is terminal for this loop instance;
// it does not restart. Each send is fire-and-forget: the loop never
// waits for transmission before the next tick, and never has more than
// one capture+send outstanding per tick.
func (a *Agent) sendLoop(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.cfg.SendInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !a.player.IsActive() {
			a.log.Info("playback inactive, send loop stopped")
			return
		}
		if a.session.State() != session.Open {
			// capture is gated on both halves of the readiness pair;
			// a closed session makes this tick a silent no-op
			continue
		}
		w, h := a.captureSize()
		frame, err := a.capturer.Capture(w, h)
		if err != nil {
			if errors.Is(err, capturer.ErrUnavailable) {
				// playback raced to inactive between the check and the grab
				a.log.Info("playback inactive, send loop stopped")
				return
			}
			a.log.Warn("capture failed, tick skipped", "err", err)
			continue
		}
		a.session.Send(frame.Data, session.KindBinary)
	}
}
