package sandbox

import "time"

const (
	defaultCommand = "python3"
	defaultTimeout = 10 * time.Second
)

// Config holds sandbox parameters.
type Config struct {
	Command string        `json:"command,omitempty" koanf:"command"`
	Timeout time.Duration `json:"timeout,omitempty" koanf:"timeout" validate:"gte=0"`
}

// DefaultConfig runs snippets with python3 and a ten second deadline.
func DefaultConfig() Config {
	return Config{
		Command: defaultCommand,
		Timeout: defaultTimeout,
	}
}
