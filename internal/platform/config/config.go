// Package config loads bridge and runtime settings from a TOML file with
// environment overrides. Both binaries share one schema so a single file can
// configure the pair.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// defaultFileName is looked up in the working directory and the user config
// directory when no explicit path is given.
const defaultFileName = "scenebridge.toml"

// Config carries every tunable of the bridge and the runtime.
type Config struct {
	// Host and Port locate the websocket endpoint the bridge listens on and
	// the runtime dials.
	Host string `toml:"host" env:"SCENEBRIDGE_HOST"`
	Port int    `toml:"port" env:"SCENEBRIDGE_PORT"`

	// CommandTimeoutMs bounds how long the bridge waits for a correlated
	// response before failing or falling back.
	CommandTimeoutMs int `toml:"command_timeout_ms" env:"SCENEBRIDGE_COMMAND_TIMEOUT_MS"`

	// FrameRate is the runtime's scene tick rate in frames per second.
	FrameRate int `toml:"frame_rate" env:"SCENEBRIDGE_FRAME_RATE"`

	// SnapshotKeepaliveMs is the maximum quiet interval between scene pushes
	// from the runtime, keeping the bridge's fallback state fresh.
	SnapshotKeepaliveMs int `toml:"snapshot_keepalive_ms" env:"SCENEBRIDGE_SNAPSHOT_KEEPALIVE_MS"`

	// StorePath is the BoltDB file holding saved viewpoints.
	StorePath string `toml:"store_path" env:"SCENEBRIDGE_STORE_PATH"`

	// LogFile redirects logging when stdout carries the MCP transport.
	LogFile string `toml:"log_file" env:"SCENEBRIDGE_LOG_FILE"`
}

// Default returns the configuration used when no file or override applies.
func Default() Config {
	return Config{
		Host:                "localhost",
		Port:                8765,
		CommandTimeoutMs:    10000,
		FrameRate:           60,
		SnapshotKeepaliveMs: 1000,
		StorePath:           "scenebridge.db",
	}
}

// Load resolves configuration in three layers: defaults, then the TOML file
// (the explicit path, or the first discovered default file), then
// environment variables. A missing file is only an error when its path was
// explicit.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, explicit := path, path != ""
	if !explicit {
		resolved = discoverFile()
	}
	if resolved != "" {
		data, err := os.ReadFile(resolved)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
			}
		case explicit:
			return Config{}, fmt.Errorf("read config %s: %w", resolved, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.CommandTimeoutMs <= 0 {
		return fmt.Errorf("command_timeout_ms must be positive")
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive")
	}
	if c.SnapshotKeepaliveMs < 0 {
		return fmt.Errorf("snapshot_keepalive_ms must be non-negative")
	}
	return nil
}

// CommandTimeout returns the per-request deadline as a duration.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutMs) * time.Millisecond
}

// SnapshotKeepalive returns the push keepalive as a duration.
func (c Config) SnapshotKeepalive() time.Duration {
	return time.Duration(c.SnapshotKeepaliveMs) * time.Millisecond
}

// BridgeURL is the websocket endpoint the runtime dials.
func (c Config) BridgeURL() string {
	return fmt.Sprintf("ws://%s:%d/ws", c.Host, c.Port)
}

// discoverFile returns the first default config file that exists, or empty.
func discoverFile() string {
	candidates := []string{defaultFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "scenebridge", defaultFileName))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
