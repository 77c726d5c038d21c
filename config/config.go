package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Endpoint  string          `mapstructure:"endpoint" yaml:"endpoint"`
	Stream    StreamConfig    `mapstructure:"stream" yaml:"stream"`
	Overlay   OverlayConfig   `mapstructure:"overlay" yaml:"overlay"`
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// StreamConfig tunes outbound frame production.
type StreamConfig struct {
	SendIntervalMS int `mapstructure:"send_interval_ms" yaml:"send_interval_ms"`
	JPEGQuality    int `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	CaptureWidth   int `mapstructure:"capture_width" yaml:"capture_width"`
	CaptureHeight  int `mapstructure:"capture_height" yaml:"capture_height"`
}

// OverlayConfig tunes how detections are drawn.
type OverlayConfig struct {
	Opacity float64 `mapstructure:"opacity" yaml:"opacity"`
}

// DiscoveryConfig controls mDNS endpoint discovery, used when no
// endpoint is configured.
type DiscoveryConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Service   string `mapstructure:"service" yaml:"service"`
	Domain    string `mapstructure:"domain" yaml:"domain"`
	TimeoutMS int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

// ServerConfig configures the bundled annotation server.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Announce bool   `mapstructure:"announce" yaml:"announce"`
}

// Default returns the built-in configuration: the original server's
// local endpoint, one frame per second, the fixed 0.6 overlay opacity.
func Default() Config {
	return Config{
		Endpoint: "ws://localhost:8700/ws",
		Stream: StreamConfig{
			SendIntervalMS: 1000,
			JPEGQuality:    85,
		},
		Overlay: OverlayConfig{
			Opacity: 0.6,
		},
		Discovery: DiscoveryConfig{
			Enabled:   false,
			Service:   "_sightcast._tcp",
			Domain:    "local.",
			TimeoutMS: 3000,
		},
		Server: ServerConfig{
			Addr:     ":8700",
			Announce: false,
		},
	}
}

// Load reads configuration from path. A missing file is not an error:
// the defaults apply, and any key present in the file overrides its
// default individually.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("endpoint", cfg.Endpoint)
	v.SetDefault("stream.send_interval_ms", cfg.Stream.SendIntervalMS)
	v.SetDefault("stream.jpeg_quality", cfg.Stream.JPEGQuality)
	v.SetDefault("stream.capture_width", cfg.Stream.CaptureWidth)
	v.SetDefault("stream.capture_height", cfg.Stream.CaptureHeight)
	v.SetDefault("overlay.opacity", cfg.Overlay.Opacity)
	v.SetDefault("discovery.enabled", cfg.Discovery.Enabled)
	v.SetDefault("discovery.service", cfg.Discovery.Service)
	v.SetDefault("discovery.domain", cfg.Discovery.Domain)
	v.SetDefault("discovery.timeout_ms", cfg.Discovery.TimeoutMS)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.announce", cfg.Server.Announce)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
