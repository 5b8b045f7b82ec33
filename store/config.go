package store

// Config holds store parameters.
type Config struct {
	Path string `json:"path,omitempty" koanf:"path"` // root directory; empty disables artifact export
}

// DefaultConfig disables the store.
func DefaultConfig() Config {
	return Config{}
}

// New creates a Store from configuration. It returns a nil Store when Path
// is empty.
func New(cfg *Config) Store {
	if cfg.Path == "" {
		return nil
	}
	return NewFileStore(cfg.Path)
}
