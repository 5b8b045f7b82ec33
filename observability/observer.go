// Package observability carries structured events out of the chatroom loop.
// Subsystems emit Events to an Observer; observers log them, forward them to
// a display, or drop them.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is event severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps the level onto slog.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= LevelDebug:
		return slog.LevelDebug
	case l == LevelInfo:
		return slog.LevelInfo
	case l == LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event, e.g. "chatroom.reply".
type EventType string

// Event is a single observation. Source names the emitting operation and
// Data holds flat attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events. Implementations must be safe for concurrent use
// and must not block for long: they run on the emitting goroutine.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
