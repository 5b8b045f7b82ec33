package artifact

import (
	"strings"
	"sync"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// Kind identifies one of the derived views.
type Kind string

const (
	KindIdea Kind = "idea"
	KindCode Kind = "code"
)

// Board holds the latest idea and code views. Each view is a single slot that
// is replaced wholesale, never merged with what was there before.
type Board struct {
	ideaSender string
	codeSender string

	mu   sync.RWMutex
	idea string
	code string
}

// NewBoard creates a Board that takes ideas from ideaSender and code from
// codeSender. Either may be empty to disable that view.
func NewBoard(ideaSender, codeSender string) *Board {
	return &Board{ideaSender: ideaSender, codeSender: codeSender}
}

// Apply inspects msg and updates the matching view. It returns the kind of
// view that changed, or false when the message left both views untouched.
// Code messages without any python fence do not clear the code view.
func (b *Board) Apply(msg protocol.Message) (Kind, bool) {
	switch {
	case b.ideaSender != "" && msg.Sender == b.ideaSender:
		b.mu.Lock()
		b.idea = msg.Content
		b.mu.Unlock()
		return KindIdea, true

	case b.codeSender != "" && msg.Sender == b.codeSender:
		blocks := ExtractPython(msg.Content)
		if len(blocks) == 0 {
			return "", false
		}
		b.mu.Lock()
		b.code = strings.Join(blocks, "\n\n")
		b.mu.Unlock()
		return KindCode, true
	}
	return "", false
}

// Idea returns the current idea text.
func (b *Board) Idea() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.idea
}

// Code returns the current code text.
func (b *Board) Code() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.code
}

// Get returns the view of the given kind.
func (b *Board) Get(kind Kind) string {
	if kind == KindIdea {
		return b.Idea()
	}
	return b.Code()
}
