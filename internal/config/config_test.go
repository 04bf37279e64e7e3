package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Wake.String() != DefaultWake {
		t.Errorf("Wake = %s, want %s", cfg.Wake, DefaultWake)
	}
	if cfg.HasDemoTime {
		t.Error("HasDemoTime = true, want false")
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Refresh != DefaultRefresh {
		t.Errorf("Refresh = %v, want %v", cfg.Refresh, DefaultRefresh)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if !cfg.Color || !cfg.AccessLog {
		t.Errorf("Color = %v, AccessLog = %v, want both true", cfg.Color, cfg.AccessLog)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SLEEPCALC_WAKE", "06:30")
	t.Setenv("SLEEPCALC_DEMO_TIME", "22:00")
	t.Setenv("SLEEPCALC_REFRESH", "5s")
	t.Setenv("SLEEPCALC_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Wake.String() != "06:30" {
		t.Errorf("Wake = %s, want 06:30", cfg.Wake)
	}
	if !cfg.HasDemoTime || cfg.DemoTime.String() != "22:00" {
		t.Errorf("DemoTime = %s (set %v), want 22:00", cfg.DemoTime, cfg.HasDemoTime)
	}
	if cfg.Refresh != 5*time.Second {
		t.Errorf("Refresh = %v, want 5s", cfg.Refresh)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleepcalc.yaml")
	if err := os.WriteFile(path, []byte("wake: \"05:45\"\nport: 9090\ncolor: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Wake.String() != "05:45" || cfg.Port != 9090 || cfg.Color {
		t.Errorf("got wake %s port %d color %v", cfg.Wake, cfg.Port, cfg.Color)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "wake out of range", key: "SLEEPCALC_WAKE", value: "25:00"},
		{name: "demo time garbage", key: "SLEEPCALC_DEMO_TIME", value: "now"},
		{name: "zero refresh", key: "SLEEPCALC_REFRESH", value: "0s"},
		{name: "bad port", key: "SLEEPCALC_PORT", value: "70000"},
		{name: "bad log level", key: "SLEEPCALC_LOG_LEVEL", value: "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(New(), ""); err == nil {
				t.Errorf("Load() with %s=%s expected error", tt.key, tt.value)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing file expected error")
	}
}

func TestNow(t *testing.T) {
	at := time.Date(2025, 11, 22, 23, 5, 42, 0, time.Local)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Now(at).String(); got != "23:05" {
		t.Errorf("Now() = %s, want 23:05", got)
	}

	t.Setenv("SLEEPCALC_DEMO_TIME", "01:15")
	cfg, err = Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Now(at).String(); got != "01:15" {
		t.Errorf("Now() with demo time = %s, want 01:15", got)
	}
}
