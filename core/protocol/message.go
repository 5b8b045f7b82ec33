package protocol

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the kind of participant that authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Well-known senders. Agent messages carry the agent name as sender.
const (
	SenderSystem = "System"
	SenderUser   = "User"
)

// Message is a single entry in a conversation. Role is what the completion
// backend sees; Sender is the display name used for labels and turn-taking.
// Messages are values: once appended to a history they are never mutated.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// NewMessage creates a Message with the given role and content and no sender.
// Use it for backend prompts that never enter a conversation history.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Hello, world!")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// NewChatMessage creates a Message attributed to sender, stamped with a fresh
// UUIDv7 identifier and the current time.
func NewChatMessage(role Role, sender, content string) Message {
	return Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      role,
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}

// IsFrom reports whether the message was authored by sender.
func (m Message) IsFrom(sender string) bool {
	return m.Sender == sender
}
