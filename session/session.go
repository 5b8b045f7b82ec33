// Package session holds the shared conversation history of a chatroom.
package session

import (
	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// Session holds an ordered, append-only sequence of conversation messages.
// Once appended a message is never mutated or removed, so any two snapshots
// taken at t1 < t2 satisfy Messages(t1) being a prefix of Messages(t2).
// Implementations must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Append adds a message to the end of the history.
	Append(msg protocol.Message)
	// Messages returns a copy of the full history.
	Messages() []protocol.Message
	// Tail returns a copy of at most the n most recent messages, oldest first.
	Tail(n int) []protocol.Message
	// Len returns the number of messages appended so far.
	Len() int
}
