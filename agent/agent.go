package agent

import (
	"context"
	"sync"
	"time"

	"sightcast/capturer"
	"sightcast/overlay"
	"sightcast/playback"
	"sightcast/session"

	"pkt.systems/pslog"
)

// DefaultSendInterval is the outbound frame cadence.
const DefaultSendInterval = time.Second

const readinessPollInterval = 50 * time.Millisecond

// Config tunes the streaming loops.
type Config struct {
	// SendInterval is the period between outbound frames. Zero means
	// DefaultSendInterval.
	SendInterval time.Duration

	// CaptureWidth/CaptureHeight override the capture resolution.
	// Zero means the player's native frame size.
	CaptureWidth  int
	CaptureHeight int
}

// Agent wires the session, the playback collaborator, the capturer and
// the overlay renderer together: it gates startup on joint readiness,
// then runs the send and receive loops as independent flows over the
// shared session.
type Agent struct {
	session  *session.Session
	player   playback.Player
	capturer *capturer.Capturer
	renderer *overlay.Renderer
	cfg      Config
	log      pslog.Logger

	wg sync.WaitGroup
}

func New(sess *session.Session, player playback.Player, capt *capturer.Capturer, rend *overlay.Renderer, cfg Config, log pslog.Logger) *Agent {
	if cfg.SendInterval <= 0 {
		cfg.SendInterval = DefaultSendInterval
	}
	return &Agent{
		session:  sess,
		player:   player,
		capturer: capt,
		renderer: rend,
		cfg:      cfg,
		log:      log,
	}
}

// Run connects, waits for the readiness gate (session open AND playback
// active), then streams until the context is canceled or both loops
// stop on their own. On the way out it issues a best-effort close
// handshake without waiting for its completion.
func (a *Agent) Run(ctx context.Context) error {
	a.session.Connect(ctx)
	if err := a.session.WaitOpen(ctx); err != nil {
		return err
	}
	a.player.Play()
	if err := a.waitActive(ctx); err != nil {
		a.session.Close("startup aborted")
		return err
	}
	a.log.Info("readiness gate passed, streaming")

	a.wg.Add(2)
	go a.sendLoop(ctx)
	go a.receiveLoop()

	loopsDone := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(loopsDone)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-loopsDone:
	}
	// closing the session also releases a receive blocked on the socket
	a.session.Close("shutting down")
	<-loopsDone
	return err
}

// waitActive polls the player until it reports an active stream. The
// Player contract has no blocking-wait to compose with, so this half of
// the readiness gate polls at a coarse interval.
func (a *Agent) waitActive(ctx context.Context) error {
	ticker := time.NewTicker(readinessPollInterval)
	defer ticker.Stop()
	for {
		if a.player.IsActive() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *Agent) captureSize() (int, int) {
	w, h := a.cfg.CaptureWidth, a.cfg.CaptureHeight
	if w <= 0 || h <= 0 {
		return a.player.FrameSize()
	}
	return w, h
}
