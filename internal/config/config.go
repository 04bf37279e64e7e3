// Package config loads sleepcalc settings from defaults, an optional config
// file, SLEEPCALC_* environment variables and command-line flags, in that
// order of precedence (flags win).
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sleepcalc/internal/cycle"
)

const EnvPrefix = "SLEEPCALC"

// Keys, also used as flag names.
const (
	KeyWake      = "wake"
	KeyDemoTime  = "demo-time"
	KeyPort      = "port"
	KeyRefresh   = "refresh"
	KeyColor     = "color"
	KeyLogLevel  = "log-level"
	KeyAccessLog = "access-log"
)

// Defaults
const (
	DefaultWake     = "07:00"
	DefaultPort     = 8484
	DefaultRefresh  = 30 * time.Second
	DefaultLogLevel = "info"
)

type Config struct {
	// Wake is the wake time used when none is given explicitly.
	Wake cycle.Clock

	// DemoTime replaces the current time when set, for reproducible output.
	DemoTime    cycle.Clock
	HasDemoTime bool

	Port      int
	Refresh   time.Duration
	Color     bool
	LogLevel  slog.Level
	AccessLog bool
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWake, DefaultWake)
	v.SetDefault(KeyDemoTime, "")
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyRefresh, DefaultRefresh)
	v.SetDefault(KeyColor, true)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyAccessLog, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if path is non-empty) and validates the merged
// settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	wake, err := cycle.ParseClock(v.GetString(KeyWake))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyWake, err)
	}

	cfg := &Config{
		Wake:      wake,
		Port:      v.GetInt(KeyPort),
		Refresh:   v.GetDuration(KeyRefresh),
		Color:     v.GetBool(KeyColor),
		AccessLog: v.GetBool(KeyAccessLog),
	}

	if s := strings.TrimSpace(v.GetString(KeyDemoTime)); s != "" {
		demo, err := cycle.ParseClock(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", KeyDemoTime, err)
		}
		cfg.DemoTime = demo
		cfg.HasDemoTime = true
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid %s %d", KeyPort, cfg.Port)
	}
	if cfg.Refresh <= 0 {
		return nil, fmt.Errorf("%s must be > 0", KeyRefresh)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	return cfg, nil
}

// Now returns the wall-clock time of t, or the demo time when one is set.
func (c *Config) Now(t time.Time) cycle.Clock {
	if c.HasDemoTime {
		return c.DemoTime
	}
	return WallClock(t)
}

// WallClock drops everything but the local hour and minute of t.
func WallClock(t time.Time) cycle.Clock {
	// Hour and Minute are always in range.
	c, _ := cycle.NewClock(t.Hour(), t.Minute())
	return c
}
