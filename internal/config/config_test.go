package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "infinicity.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"

[window]
width = 1024
height = 768

[scroll]
step = 0.25

[audio]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "Infinicity", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, 0.25, cfg.Scroll.Step)
	assert.False(t, cfg.Audio.Enabled)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[window]\nwidht = 3\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadValidates(t *testing.T) {
	path := writeFile(t, "[scroll]\nstep = 1.5\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INFINICITY_SCROLL_STEP", "0.05")
	t.Setenv("INFINICITY_AUDIO", "false")
	t.Setenv("INFINICITY_TELEMETRY", "1")
	t.Setenv("INFINICITY_WINDOW_WIDTH", "640")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Scroll.Step)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 640, cfg.Window.Width)
}

func TestEnvParseErrors(t *testing.T) {
	env := map[string]string{
		"INFINICITY_SCROLL_STEP": "fast",
		"INFINICITY_AUDIO":       "maybe",
	}
	cfg := Default()
	err := cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFINICITY_SCROLL_STEP")
	assert.Contains(t, err.Error(), "INFINICITY_AUDIO")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.Window.Width = 0
	cfg.Scroll.Step = 0
	cfg.Audio.Volume = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	for _, want := range []string{"log_level", "window size", "scroll.step", "audio.volume"} {
		assert.Contains(t, err.Error(), want)
	}
}
