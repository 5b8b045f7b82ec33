// Package logger builds the process logger. Records are formatted by
// charmbracelet/log and exposed through log/slog so the rest of the module
// depends only on *slog.Logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// LogLevel names a minimum severity.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// ToCharmlogLevel maps the level onto charm's levels, defaulting to info.
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Config controls log formatting and destination.
type Config struct {
	Level      LogLevel `json:"level,omitempty" koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON       bool     `json:"json,omitempty" koanf:"json"`
	File       string   `json:"file,omitempty" koanf:"file"`
	TimeFormat string   `json:"time_format,omitempty" koanf:"time_format"`
}

// DefaultConfig logs at info level in text form.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		TimeFormat: "15:04:05",
	}
}

// New creates a logger writing to out.
func New(cfg *Config, out io.Writer) *slog.Logger {
	if cfg == nil {
		d := DefaultConfig()
		cfg = &d
	}

	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
		Prefix:          "chatroom",
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	} else {
		charmLogger.SetFormatter(charmlog.TextFormatter)
	}

	return slog.New(charmLogger)
}

// Open creates a logger for cfg. When cfg.File is set records are appended to
// that file and the returned closer releases it; otherwise they go to
// fallback and the closer is a no-op.
func Open(cfg *Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return New(cfg, fallback), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(cfg, f), f, nil
}
