package observability

import (
	"fmt"
	"log/slog"
)

var observers = map[string]func(*slog.Logger) Observer{
	"noop": func(*slog.Logger) Observer { return NoOpObserver{} },
	"slog": func(l *slog.Logger) Observer { return NewSlogObserver(l) },
}

// Lookup builds the observer named name, handing it logger.
// Known names: "noop" and "slog".
func Lookup(name string, logger *slog.Logger) (Observer, error) {
	build, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return build(logger), nil
}
