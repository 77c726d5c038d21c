package capturer

import (
	"bytes"
	"image"
	"image/jpeg"
)

// DefaultJPEGQuality matches the usual sweet spot for streamed stills.
const DefaultJPEGQuality = 85

// Codec turns raw pixels into a compact wire format. The codec must be
// stateless across calls.
type Codec interface {
	Encode(img image.Image) ([]byte, error)
	MIME() string
}

// JPEGCodec is the default lossy codec. The zero value uses
// DefaultJPEGQuality.
type JPEGCodec struct {
	Quality int
}

func (c JPEGCodec) Encode(img image.Image) ([]byte, error) {
	q := c.Quality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c JPEGCodec) MIME() string { return "image/jpeg" }
