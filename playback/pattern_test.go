package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternPlayerLifecycle(t *testing.T) {
	p := NewPatternPlayer(320, 240)
	assert.False(t, p.IsActive())

	_, err := p.CurrentPixels(320, 240)
	require.Error(t, err, "inactive player has no pixels")

	p.Play()
	assert.True(t, p.IsActive())

	img, err := p.CurrentPixels(320, 240)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	p.Stop()
	assert.False(t, p.IsActive())
}

func TestPatternPlayerFramesAdvance(t *testing.T) {
	p := NewPatternPlayer(16, 16)
	p.Play()

	a, err := p.CurrentPixels(16, 16)
	require.NoError(t, err)
	b, err := p.CurrentPixels(16, 16)
	require.NoError(t, err)
	assert.NotEqual(t, a.At(8, 8), b.At(8, 8), "consecutive frames must differ")
}

func TestPatternPlayerDefaultSize(t *testing.T) {
	p := NewPatternPlayer(0, 0)
	w, h := p.FrameSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 640, h)
}
