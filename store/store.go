// Package store keeps the chatroom's on-disk artifacts: the idea description
// the code generator reads and the latest idea and code views exported by a
// running chat. Conversation history is never stored.
package store

import (
	"context"
	"errors"
)

// Well-known artifact keys.
const (
	KeyIdea = "idea.txt"
	KeyCode = "code.py"
)

// Sentinel errors for store operations.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrLoadFailed  = errors.New("load failed")
	ErrSaveFailed  = errors.New("save failed")
	ErrInvalidKey  = errors.New("invalid key")
)

// Entry is a stored artifact. Keys are /-separated relative paths.
type Entry struct {
	Key   string
	Value []byte
}

// Store reads and writes artifacts. Implementations do no caching.
type Store interface {
	// List returns all stored keys.
	List(ctx context.Context) ([]string, error)
	// Load retrieves entries for keys, failing on the first missing key.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
	// Save creates or overwrites entries.
	Save(ctx context.Context, entries ...Entry) error
	// Delete removes entries. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// LoadText returns the value stored under key as a string.
func LoadText(ctx context.Context, s Store, key string) (string, error) {
	entries, err := s.Load(ctx, key)
	if err != nil {
		return "", err
	}
	return string(entries[0].Value), nil
}

// SaveText stores text under key.
func SaveText(ctx context.Context, s Store, key, text string) error {
	return s.Save(ctx, Entry{Key: key, Value: []byte(text)})
}
