package detection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire format (one message per batch):
//
//	{"detections": [{"box": [x, y, w, h], "color": "<string>"}, ...]}
//
// Box coordinates are source-video pixels, origin top-left. The color
// field doubles as style key and display label; the server may put a
// class name in it.

var ErrNoDetections = errors.New("detection: payload has no detections field")

// Box is one detected region, encoded on the wire as [x, y, w, h].
type Box struct {
	X int
	Y int
	W int
	H int
}

func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X, b.Y, b.W, b.H})
}

func (b *Box) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("detection: bad box: %w", err)
	}
	if len(v) != 4 {
		return fmt.Errorf("detection: bad box: got %d elements, want 4", len(v))
	}
	b.X, b.Y, b.W, b.H = v[0], v[1], v[2], v[3]
	return nil
}

type Detection struct {
	Box   Box    `json:"box"`
	Color string `json:"color"`
}

// Batch is the full set of regions carried by one inbound message.
// A batch always replaces the previous one; there is no diff or merge.
type Batch struct {
	Detections []Detection `json:"detections"`
}

// DecodeBatch parses one text payload. The batch is atomic: any
// malformed entry rejects the whole message. A missing or null
// detections field is a decode failure; an empty array is a valid
// empty batch.
func DecodeBatch(data []byte) (Batch, error) {
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return Batch{}, fmt.Errorf("detection: decode batch: %w", err)
	}
	if b.Detections == nil {
		return Batch{}, ErrNoDetections
	}
	return b, nil
}

// EncodeBatch is the server-side counterpart of DecodeBatch.
func EncodeBatch(b Batch) ([]byte, error) {
	if b.Detections == nil {
		b.Detections = []Detection{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("detection: encode batch: %w", err)
	}
	return data, nil
}
