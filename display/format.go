// Package display renders a chatroom conversation. Renderers are chatroom
// sinks: they receive every appended message in order and hand user input
// back through an Injector.
package display

import (
	"fmt"
	"time"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// TimeFormat is the 12-hour clock used for transcript timestamps.
const TimeFormat = "03:04 PM"

// UserLabel is how the human participant is shown.
const UserLabel = "You"

// Injector accepts text typed by the human participant.
type Injector interface {
	InjectUserMessage(text string) error
}

// InjectorFunc adapts a function to the Injector interface.
type InjectorFunc func(text string) error

func (f InjectorFunc) InjectUserMessage(text string) error {
	return f(text)
}

// Label returns the display name for a sender.
func Label(sender string) string {
	if sender == protocol.SenderUser {
		return UserLabel
	}
	return sender
}

// Stamp formats the message time, falling back to now for unstamped messages.
func Stamp(msg protocol.Message) string {
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Format(TimeFormat)
}

// Header renders "<label> [<time>]:" for msg.
func Header(msg protocol.Message) string {
	return fmt.Sprintf("%s [%s]:", Label(msg.Sender), Stamp(msg))
}
