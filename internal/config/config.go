package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds environment-provided settings. Command-line flags override
// individual fields after Load.
type Config struct {
	LogLevel    slog.Level `env:"SPACESYNC_LOG_LEVEL" envDefault:"info"`
	LogFormat   string     `env:"SPACESYNC_LOG_FORMAT" envDefault:"text"`
	JournalPath string     `env:"SPACESYNC_JOURNAL_PATH" envDefault:"spacesync.db"`

	// Strict makes the CLI exit non-zero when a payload is dropped instead
	// of reporting an empty record.
	Strict bool `env:"SPACESYNC_STRICT" envDefault:"false"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings env parsing cannot check on its own.
func (c Config) Validate() error {
	if c.LogFormat != FormatText && c.LogFormat != FormatJSON {
		return fmt.Errorf("invalid log format %q: must be %s or %s", c.LogFormat, FormatText, FormatJSON)
	}
	if c.JournalPath == "" {
		return fmt.Errorf("journal path must not be empty")
	}
	return nil
}

// NewLogger builds a logger writing to w in the configured format and level.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
