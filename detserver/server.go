package detserver

import (
	"fmt"
	"net/http"

	"sightcast/detection"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"pkt.systems/pslog"
)

// DefaultAddr is the listen address clients expect by default.
const DefaultAddr = ":8700"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // LAN tool, any origin may connect
	},
}

// Server answers streamed video frames with detection batches: each
// binary websocket message is one encoded frame, each reply is one
// JSON text message with the full batch for that frame.
type Server struct {
	detector func() Detector
	router   *gin.Engine
	log      pslog.Logger
}

// New builds the server. detector is called once per connection, so
// stateful detectors never share state across clients.
func New(detector func() Detector, log pslog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{detector: detector, log: log}
	r := gin.New()
	r.GET("/ws", s.handleWS)
	s.router = r
	return s
}

// Router exposes the gin engine for embedding and tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	s.log.Info("annotation server listening", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	log := s.log.With("client", uuid.NewString()[:8], "remote", conn.RemoteAddr().String())
	log.Info("client connected")
	det := s.detector()

	for {
		mt, p, err := conn.ReadMessage()
		if err != nil {
			log.Info("client gone", "err", err)
			return
		}
		switch mt {
		case websocket.BinaryMessage:
			log.Trace("frame received", "bytes", len(p))
			detections, err := det.Detect(p)
			if err != nil {
				log.Warn("frame skipped", "err", err)
				continue
			}
			reply := detection.Batch{Detections: detections}
			data, err := detection.EncodeBatch(reply)
			if err != nil {
				log.Error("batch encode failed", "err", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn("reply failed", "err", err)
				return
			}
			log.Trace("batch sent", "detections", len(detections))
		case websocket.TextMessage:
			log.Warn("unexpected text message ignored", "bytes", len(p))
		}
	}
}

// Announce advertises the server over mDNS so clients can find it
// without configuration. Shut the returned server down on teardown.
func Announce(instance string, port int) (*zeroconf.Server, error) {
	srv, err := zeroconf.Register(instance, "_sightcast._tcp", "local.", port, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("detserver: announce: %w", err)
	}
	return srv, nil
}
