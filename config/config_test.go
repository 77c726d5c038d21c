package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ws://localhost:8700/ws", cfg.Endpoint)
	assert.Equal(t, 1000, cfg.Stream.SendIntervalMS)
	assert.Equal(t, 85, cfg.Stream.JPEGQuality)
	assert.InDelta(t, 0.6, cfg.Overlay.Opacity, 1e-9)
	assert.Equal(t, ":8700", cfg.Server.Addr)
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesIndividualKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"endpoint: ws://camera.local:9000/ws\nstream:\n  send_interval_ms: 250\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ws://camera.local:9000/ws", cfg.Endpoint)
	assert.Equal(t, 250, cfg.Stream.SendIntervalMS)
	// untouched keys keep their defaults
	assert.Equal(t, 85, cfg.Stream.JPEGQuality)
	assert.InDelta(t, 0.6, cfg.Overlay.Opacity, 1e-9)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = "ws://10.0.0.7:8700/ws"
	cfg.Overlay.Opacity = 0.4

	path := filepath.Join(t.TempDir(), "nested", "sightcast.yaml")
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
