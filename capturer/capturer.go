package capturer

import (
	"errors"
	"fmt"

	"sightcast/playback"

	"pkt.systems/pslog"
)

// ErrUnavailable means playback is not active, so there is no frame to
// capture. Callers should treat it as a skip, not a failure.
var ErrUnavailable = errors.New("capturer: playback not active")

// Frame is one encoded still, produced per send tick and consumed
// immediately. At most one is ever in flight.
type Frame struct {
	Width    int
	Height   int
	Data     []byte
	Encoding string // MIME type of Data, e.g. "image/jpeg"
}

// Capturer reads the current pixels from the playback collaborator and
// encodes them with the configured still-image codec.
type Capturer struct {
	player playback.Player
	codec  Codec
	log    pslog.Logger
}

func New(player playback.Player, codec Codec, log pslog.Logger) *Capturer {
	if codec == nil {
		codec = JPEGCodec{}
	}
	return &Capturer{player: player, codec: codec, log: log}
}

// Capture grabs and encodes one frame at the requested resolution.
// Everything allocated here is scoped to the call; nothing is retained
// between captures. Returns ErrUnavailable when playback is inactive,
// so it is safe to call on every tick without checking first.
func (c *Capturer) Capture(width, height int) (Frame, error) {
	if !c.player.IsActive() {
		return Frame{}, ErrUnavailable
	}
	img, err := c.player.CurrentPixels(width, height)
	if err != nil {
		return Frame{}, fmt.Errorf("capturer: read pixels: %w", err)
	}
	data, err := c.codec.Encode(img)
	if err != nil {
		return Frame{}, fmt.Errorf("capturer: encode: %w", err)
	}
	c.log.Trace("frame captured", "width", width, "height", height, "bytes", len(data))
	return Frame{
		Width:    width,
		Height:   height,
		Data:     data,
		Encoding: c.codec.MIME(),
	}, nil
}
