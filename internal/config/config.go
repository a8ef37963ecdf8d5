// Package config loads gf2div settings from a YAML file.
//
// The file lives at ~/.gf2div/config.yaml unless --config points
// elsewhere. A missing file is not an error; Default() is used instead.
// Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Mr-Dark-debug/gf2div/internal/validation"
	"github.com/Mr-Dark-debug/gf2div/pkg/timeutil"
)

// Config holds every user-tunable setting.
type Config struct {
	// Dividend and Divisor are the operands loaded at start-up.
	Dividend string `yaml:"dividend"`
	Divisor  string `yaml:"divisor"`

	// SpeedMs is the playback interval in milliseconds.
	SpeedMs int `yaml:"speed_ms"`

	// DBPath is the history database. Empty disables history.
	DBPath string `yaml:"db_path"`

	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig configures `gf2div serve`.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// HistoryConfig configures history listings.
type HistoryConfig struct {
	// TimeFormat is a strftime pattern.
	TimeFormat string `yaml:"time_format"`
	Limit      int    `yaml:"limit"`
}

// Dir returns the gf2div state directory, ~/.gf2div.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gf2div"
	}
	return filepath.Join(home, ".gf2div")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dividend: "1100110000",
		Divisor:  "11001",
		SpeedMs:  1500,
		DBPath:   filepath.Join(Dir(), "history.db"),
		Server: ServerConfig{
			Addr:          "127.0.0.1:8787",
			BatchSize:     100,
			FlushInterval: 500 * time.Millisecond,
		},
		History: HistoryConfig{
			TimeFormat: timeutil.DefaultLayout,
			Limit:      20,
		},
	}
}

// Speed returns SpeedMs as a duration.
func (c Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// Load reads path on top of Default(). An empty path means DefaultPath().
// A missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if err := validation.Validate(c.Dividend, c.Divisor); err != nil {
		return err
	}
	if c.SpeedMs <= 0 {
		return fmt.Errorf("speed_ms must be positive, got %d", c.SpeedMs)
	}
	if c.Server.BatchSize <= 0 {
		return fmt.Errorf("server.batch_size must be positive, got %d", c.Server.BatchSize)
	}
	if c.Server.FlushInterval <= 0 {
		return fmt.Errorf("server.flush_interval must be positive, got %s", c.Server.FlushInterval)
	}
	if err := timeutil.ValidateLayout(c.History.TimeFormat); err != nil {
		return fmt.Errorf("history.time_format: %w", err)
	}
	return nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
