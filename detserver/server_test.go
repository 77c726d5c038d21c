package detserver

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sightcast/detection"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"
)

func testLogger() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
}

func encodeTestFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	s := New(func() Detector { return &DummyDetector{} }, testLogger())
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerAnswersFrameWithBatch(t *testing.T) {
	conn := dialTestServer(t)

	frame := encodeTestFrame(t, 64, 48)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, frame))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, p, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)

	batch, err := detection.DecodeBatch(p)
	require.NoError(t, err)
	require.Len(t, batch.Detections, 2)
	assert.Equal(t, detection.Box{X: 16, Y: 12, W: 32, H: 24}, batch.Detections[0].Box)
	assert.Equal(t, "red", batch.Detections[0].Color)
}

func TestServerOneBatchPerFrame(t *testing.T) {
	conn := dialTestServer(t)
	frame := encodeTestFrame(t, 32, 32)

	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, frame))
	}
	colors := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, p, err := conn.ReadMessage()
		require.NoError(t, err)
		batch, err := detection.DecodeBatch(p)
		require.NoError(t, err)
		colors = append(colors, batch.Detections[0].Color)
	}
	// the dummy detector cycles its palette, one step per frame
	assert.Equal(t, []string{"red", "lime", "blue"}, colors)
}

func TestServerSkipsUndecodableFrame(t *testing.T) {
	conn := dialTestServer(t)

	// garbage frame is skipped, the next valid one still gets a reply
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("not a jpeg")))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, encodeTestFrame(t, 32, 32)))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err)
	_, err = detection.DecodeBatch(p)
	require.NoError(t, err)
}

func TestDummyDetectorDeterministicFirstBox(t *testing.T) {
	d := &DummyDetector{}
	dets, err := d.Detect(encodeTestFrame(t, 640, 640))
	require.NoError(t, err)
	require.Len(t, dets, 2)
	assert.Equal(t, detection.Box{X: 160, Y: 160, W: 320, H: 320}, dets[0].Box)
}
