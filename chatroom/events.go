package chatroom

import "github.com/tailored-agentic-units/chatroom/observability"

// Coordinator event types.
const (
	EventStart     observability.EventType = "chatroom.start"
	EventRound     observability.EventType = "chatroom.round"
	EventGate      observability.EventType = "chatroom.gate"
	EventTurnStart observability.EventType = "chatroom.turn.start"
	EventReply     observability.EventType = "chatroom.reply"
	EventUser      observability.EventType = "chatroom.user"
	EventIdle      observability.EventType = "chatroom.idle"
	EventError     observability.EventType = "chatroom.error"
)
