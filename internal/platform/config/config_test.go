package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8765 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.CommandTimeoutMs != 10000 {
		t.Errorf("expected default timeout, got %d", cfg.CommandTimeoutMs)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("expected default frame rate, got %d", cfg.FrameRate)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenebridge.toml")
	content := "port = 9001\ncommand_timeout_ms = 2500\nstore_path = \"/tmp/vp.db\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9001 || cfg.CommandTimeoutMs != 2500 || cfg.StorePath != "/tmp/vp.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Host != "localhost" {
		t.Errorf("unset fields must keep defaults, got host %q", cfg.Host)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing explicit file")
	}
}

func TestLoadDiscoversWorkingDirFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile("scenebridge.toml", []byte("port = 9100\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("discovered file not applied: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenebridge.toml")
	if err := os.WriteFile(path, []byte("port = 9001\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCENEBRIDGE_PORT", "9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"zero port", map[string]string{"SCENEBRIDGE_PORT": "0"}},
		{"huge port", map[string]string{"SCENEBRIDGE_PORT": "70000"}},
		{"zero timeout", map[string]string{"SCENEBRIDGE_COMMAND_TIMEOUT_MS": "0"}},
		{"zero frame rate", map[string]string{"SCENEBRIDGE_FRAME_RATE": "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBridgeURL(t *testing.T) {
	cfg := Default()
	if got := cfg.BridgeURL(); got != "ws://localhost:8765/ws" {
		t.Fatalf("unexpected url %q", got)
	}
}
