package chatroom

import "github.com/tailored-agentic-units/chatroom/core/protocol"

// Sink receives every message in append order. OnMessage is called with the
// coordinator's append lock held, so it must hand rendering off rather than
// call back into the coordinator.
type Sink interface {
	OnMessage(msg protocol.Message)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(msg protocol.Message)

func (f SinkFunc) OnMessage(msg protocol.Message) {
	f(msg)
}

type multiSink []Sink

func (m multiSink) OnMessage(msg protocol.Message) {
	for _, s := range m {
		s.OnMessage(msg)
	}
}

// Sinks fans messages out to every non-nil sink in order.
func Sinks(sinks ...Sink) Sink {
	filtered := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
