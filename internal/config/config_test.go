package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/gf2div/internal/validation"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1500*time.Millisecond, cfg.Speed())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dividend: "11010011101100000"
divisor: "1011"
speed_ms: 500
server:
  addr: ":9000"
  flush_interval: 2s
history:
  time_format: "%H:%M"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "11010011101100000", cfg.Dividend)
	assert.Equal(t, "1011", cfg.Divisor)
	assert.Equal(t, 500*time.Millisecond, cfg.Speed())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.FlushInterval)
	assert.Equal(t, 100, cfg.Server.BatchSize, "unset keys keep their defaults")
	assert.Equal(t, "%H:%M", cfg.History.TimeFormat)
}

func TestLoadRejectsInvalidOperands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("divisor: \"0110\"\n"), 0o644))

	_, err := Load(path)
	var ferr *validation.FieldError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, validation.FieldDivisor, ferr.Field)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed_ms: [1, 2\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.SpeedMs = 0
	assert.ErrorContains(t, cfg.Validate(), "speed_ms")

	cfg = Default()
	cfg.History.TimeFormat = "%Q"
	assert.ErrorContains(t, cfg.Validate(), "history.time_format")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := Default()
	want.Divisor = "1011"
	want.SpeedMs = 3000

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
