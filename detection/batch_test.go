package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch(t *testing.T) {
	payload := []byte(`{"detections":[{"box":[100,100,50,50],"color":"red"},{"box":[0,0,10,20],"color":"person"}]}`)
	batch, err := DecodeBatch(payload)
	require.NoError(t, err)
	require.Len(t, batch.Detections, 2)
	assert.Equal(t, Box{X: 100, Y: 100, W: 50, H: 50}, batch.Detections[0].Box)
	assert.Equal(t, "red", batch.Detections[0].Color)
	assert.Equal(t, "person", batch.Detections[1].Color)
}

func TestDecodeBatchEmptyArrayIsValid(t *testing.T) {
	batch, err := DecodeBatch([]byte(`{"detections":[]}`))
	require.NoError(t, err)
	require.NotNil(t, batch.Detections)
	assert.Empty(t, batch.Detections)
}

func TestDecodeBatchMissingDetections(t *testing.T) {
	_, err := DecodeBatch([]byte(`{}`))
	require.ErrorIs(t, err, ErrNoDetections)
}

func TestDecodeBatchNullDetections(t *testing.T) {
	_, err := DecodeBatch([]byte(`{"detections":null}`))
	require.ErrorIs(t, err, ErrNoDetections)
}

func TestDecodeBatchMalformedPayload(t *testing.T) {
	for _, payload := range []string{
		`not json`,
		`[1,2,3]`,
		`{"detections":[{"box":[1,2,3],"color":"red"}]}`,
		`{"detections":[{"box":[1,2,3,4,5],"color":"red"}]}`,
		`{"detections":[{"box":"nope","color":"red"}]}`,
	} {
		_, err := DecodeBatch([]byte(payload))
		assert.Error(t, err, "payload %s", payload)
	}
}

func TestBoxUnmarshalRejectsWrongArity(t *testing.T) {
	var b Box
	require.NoError(t, b.UnmarshalJSON([]byte(`[1,2,3,4]`)))
	assert.Equal(t, Box{X: 1, Y: 2, W: 3, H: 4}, b)

	// a short tuple must not zero-fill, and a long one must not truncate
	assert.Error(t, b.UnmarshalJSON([]byte(`[1,2,3]`)))
	assert.Error(t, b.UnmarshalJSON([]byte(`[1,2,3,4,5]`)))
	assert.Error(t, b.UnmarshalJSON([]byte(`[]`)))
}

func TestEncodeBatchRoundTrip(t *testing.T) {
	in := Batch{Detections: []Detection{{Box: Box{X: 1, Y: 2, W: 3, H: 4}, Color: "blue"}}}
	data, err := EncodeBatch(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"detections":[{"box":[1,2,3,4],"color":"blue"}]}`, string(data))

	out, err := DecodeBatch(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeBatchNilDetections(t *testing.T) {
	data, err := EncodeBatch(Batch{})
	require.NoError(t, err)
	// nil must serialize as an empty batch, not a null field
	assert.JSONEq(t, `{"detections":[]}`, string(data))
}
