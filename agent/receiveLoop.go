package agent

import (
	"errors"

	"sightcast/detection"
	"sightcast/session"
)

// receiveLoop pulls inbound messages and pushes decoded batches to the
// renderer. It stops when the peer closes the channel or the session
// leaves the Open state. This loop never sends.
func (a *Agent) receiveLoop() {
	defer a.wg.Done()
	for {
		if st := a.session.State(); st != session.Open {
			a.log.Info("session no longer open, receive loop stopped", "state", st.String())
			return
		}
		msg, err := a.session.Receive()
		if err != nil {
			if errors.Is(err, session.ErrPeerClosed) {
				a.log.Info("receive loop stopped", "cause", "peer closed")
			} else {
				a.log.Warn("receive loop stopped", "err", err)
			}
			return
		}
		switch msg.Kind {
		case session.KindText:
			batch, err := detection.DecodeBatch(msg.Data)
			if err != nil {
				a.log.Error("detection payload rejected", "err", err, "bytes", len(msg.Data))
				continue
			}
			vw, vh := a.player.FrameSize()
			a.renderer.ApplyBatch(batch, vw, vh)
			a.log.Trace("batch applied", "detections", len(batch.Detections))
		case session.KindBinary:
			// inbound protocol is text-only
			a.log.Warn("unexpected binary message ignored", "bytes", len(msg.Data))
		}
	}
}
