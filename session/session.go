package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"pkt.systems/pslog"
)

// ErrPeerClosed reports a normal end of the inbound flow: the peer
// closed the channel or the socket died underneath it.
var ErrPeerClosed = errors.New("session: peer closed the connection")

const closeHandshakeTimeout = 2 * time.Second

// State is the session lifecycle position.
type State int32

const (
	Connecting State = iota
	Open
	Closed
	Faulted
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// MessageKind tags a complete websocket message.
type MessageKind int

const (
	KindText MessageKind = iota + 1
	KindBinary
)

// Message is one complete inbound message.
type Message struct {
	Kind MessageKind
	Data []byte
}

type outbound struct {
	kind MessageKind
	data []byte
}

// Session owns one websocket connection end to end: connect, send,
// receive, close. A dedicated writer goroutine serializes all outbound
// data traffic, so the send and receive flows never interleave partial
// writes on the duplex stream. Outbound frames go through a single-slot
// mailbox: a newer frame overwrites an unsent one rather than queueing.
type Session struct {
	endpoint string
	log      pslog.Logger

	state atomic.Int32
	fault atomic.Value // string, cause of the last fault

	mu   sync.Mutex // guards conn
	conn *websocket.Conn

	opened   chan struct{} // closed once the connect attempt resolves
	openOnce sync.Once

	boxMu      sync.Mutex
	boxCond    *sync.Cond
	boxMsg     *outbound
	writerDone bool
	drops      atomic.Uint64

	closeOnce sync.Once
}

// New creates a session in the Connecting state. Nothing touches the
// network until Connect.
func New(endpoint string, log pslog.Logger) *Session {
	s := &Session{
		endpoint: endpoint,
		log:      log.With("endpoint", endpoint),
		opened:   make(chan struct{}),
	}
	s.boxCond = sync.NewCond(&s.boxMu)
	s.state.Store(int32(Connecting))
	return s
}

func (s *Session) State() State {
	return State(s.state.Load())
}

// Fault returns the recorded cause of the last fault, if any.
func (s *Session) Fault() string {
	if v, ok := s.fault.Load().(string); ok {
		return v
	}
	return ""
}

// Drops reports how many outbound frames were overwritten before the
// writer could send them.
func (s *Session) Drops() uint64 {
	return s.drops.Load()
}

// Connect dials the endpoint as a detached task. The outcome lands in
// the session state: Open on success, Faulted with a recorded cause on
// failure. There is no retry; a failed attempt is terminal.
func (s *Session) Connect(ctx context.Context) {
	go func() {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.endpoint, nil)
		if err != nil {
			s.fail(fmt.Sprintf("connect: %v", err))
			s.openOnce.Do(func() { close(s.opened) })
			return
		}
		if !s.state.CompareAndSwap(int32(Connecting), int32(Open)) {
			// closed while the dial was in flight
			conn.Close()
			s.openOnce.Do(func() { close(s.opened) })
			return
		}
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()
		s.log.Info("session open")
		go s.writeLoop(conn)
		s.openOnce.Do(func() { close(s.opened) })
	}()
}

// WaitOpen blocks until the connect attempt resolves. Returns nil once
// the session is Open, the fault cause if the dial failed, or the
// context error.
func (s *Session) WaitOpen(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.opened:
	}
	if s.State() != Open {
		return fmt.Errorf("session: %s", s.Fault())
	}
	return nil
}

// Send hands one complete message to the writer. Valid only while the
// session is Open; otherwise it is a no-op that logs a warning. Send
// never blocks: if the previous frame is still unsent it is overwritten
// and counted as a drop.
func (s *Session) Send(data []byte, kind MessageKind) {
	if st := s.State(); st != Open {
		s.log.Warn("send skipped: session not open", "state", st.String(), "bytes", len(data))
		return
	}
	s.boxMu.Lock()
	if s.boxMsg != nil {
		n := s.drops.Add(1)
		s.log.Warn("outbound frame overwritten before send", "drops", n)
	}
	s.boxMsg = &outbound{kind: kind, data: data}
	s.boxCond.Signal()
	s.boxMu.Unlock()
}

// Receive blocks until the next complete inbound message. A peer close
// or dead socket returns ErrPeerClosed. There is deliberately no
// context here: a blocked Receive only unblocks when the peer acts or
// the session is closed, which bounds loop shutdown latency to one
// iteration.
func (s *Session) Receive() (Message, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return Message{}, ErrPeerClosed
	}
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.state.CompareAndSwap(int32(Open), int32(Closed))
				s.stopWriter()
				s.log.Info("peer closed the session")
			} else if s.State() == Open {
				s.fail(fmt.Sprintf("receive: %v", err))
			}
			return Message{}, ErrPeerClosed
		}
		switch mt {
		case websocket.TextMessage:
			return Message{Kind: KindText, Data: data}, nil
		case websocket.BinaryMessage:
			return Message{Kind: KindBinary, Data: data}, nil
		default:
			// ping/pong are answered by gorilla internally
			continue
		}
	}
}

// Close shuts the session down. Idempotent. When Open it sends a
// best-effort close handshake with the given reason; it never blocks
// beyond a short write deadline.
func (s *Session) Close(reason string) {
	s.closeOnce.Do(func() {
		wasOpen := s.state.CompareAndSwap(int32(Open), int32(Closed))
		// reject a dial still in flight
		s.state.CompareAndSwap(int32(Connecting), int32(Closed))
		s.stopWriter()
		if !wasOpen {
			return
		}
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		deadline := time.Now().Add(closeHandshakeTimeout)
		// WriteControl is safe alongside the writer goroutine
		if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			s.log.Warn("close handshake failed", "err", err)
		}
		conn.Close()
		s.log.Info("session closed", "reason", reason)
	})
}

// writeLoop is the single writer for data frames.
func (s *Session) writeLoop(conn *websocket.Conn) {
	for {
		s.boxMu.Lock()
		for s.boxMsg == nil && !s.writerDone {
			s.boxCond.Wait()
		}
		if s.writerDone {
			s.boxMu.Unlock()
			return
		}
		m := s.boxMsg
		s.boxMsg = nil
		s.boxMu.Unlock()

		wire := websocket.BinaryMessage
		if m.kind == KindText {
			wire = websocket.TextMessage
		}
		if err := conn.WriteMessage(wire, m.data); err != nil {
			s.log.Warn("send failed, frame dropped", "err", err, "bytes", len(m.data))
			s.fail(fmt.Sprintf("send: %v", err))
			return
		}
		s.log.Trace("frame sent", "bytes", len(m.data))
	}
}

func (s *Session) stopWriter() {
	s.boxMu.Lock()
	s.writerDone = true
	s.boxMsg = nil
	s.boxCond.Broadcast()
	s.boxMu.Unlock()
}

// fail moves a live session to Faulted and records the cause.
func (s *Session) fail(cause string) {
	if s.state.CompareAndSwap(int32(Connecting), int32(Faulted)) ||
		s.state.CompareAndSwap(int32(Open), int32(Faulted)) {
		s.fault.Store(cause)
		s.log.Error("session faulted", "cause", cause)
	}
	s.stopWriter()
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}
