// Package config loads runtime settings from defaults, an optional TOML
// file and INFINICITY_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel  string          `toml:"log_level"`
	Window    WindowConfig    `toml:"window"`
	Scroll    ScrollConfig    `toml:"scroll"`
	Audio     AudioConfig     `toml:"audio"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// ScrollConfig controls how held keys turn into scroll deltas. A press
// moves Step rows at once; holding repeats after RepeatDelay seconds at
// RepeatRate steps per second.
type ScrollConfig struct {
	Step        float64 `toml:"step"`
	RepeatDelay float64 `toml:"repeat_delay"`
	RepeatRate  float64 `toml:"repeat_rate"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  512,
			Height: 512,
			Title:  "Infinicity",
			VSync:  true,
		},
		Scroll: ScrollConfig{
			Step:        0.1,
			RepeatDelay: 0.35,
			RepeatRate:  30,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from INFINICITY_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("INFINICITY_LOG_LEVEL", &c.LogLevel)
	integer("INFINICITY_WINDOW_WIDTH", &c.Window.Width)
	integer("INFINICITY_WINDOW_HEIGHT", &c.Window.Height)
	num("INFINICITY_SCROLL_STEP", &c.Scroll.Step)
	flag("INFINICITY_AUDIO", &c.Audio.Enabled)
	num("INFINICITY_VOLUME", &c.Audio.Volume)
	flag("INFINICITY_TELEMETRY", &c.Telemetry.Enabled)

	if len(errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	if _, err := c.Level(); err != nil {
		bad("log_level %q", c.LogLevel)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	// A step of a whole row or more would skip rows on every key press.
	if !finite(c.Scroll.Step) || c.Scroll.Step <= 0 || c.Scroll.Step >= 1 {
		bad("scroll.step %v not in (0,1)", c.Scroll.Step)
	}
	if !finite(c.Scroll.RepeatDelay) || c.Scroll.RepeatDelay < 0 {
		bad("scroll.repeat_delay %v", c.Scroll.RepeatDelay)
	}
	if !finite(c.Scroll.RepeatRate) || c.Scroll.RepeatRate <= 0 {
		bad("scroll.repeat_rate %v", c.Scroll.RepeatRate)
	}
	if !finite(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio.volume %v not in [0,1]", c.Audio.Volume)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}
