package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

type memorySession struct {
	id       string
	messages []protocol.Message
	mu       sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice.
// The session is assigned a unique UUIDv7 identifier.
func NewMemorySession() Session {
	return &memorySession{
		id: uuid.Must(uuid.NewV7()).String(),
	}
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Append(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *memorySession) Messages() []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]protocol.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

func (s *memorySession) Tail(n int) []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []protocol.Message{}
	}
	start := max(len(s.messages)-n, 0)

	copied := make([]protocol.Message, len(s.messages)-start)
	copy(copied, s.messages[start:])
	return copied
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
