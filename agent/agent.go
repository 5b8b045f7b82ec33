// Package agent implements the conversational participants of a chatroom.
//
// Every agent is a named Agent that can complete an arbitrary prompt and reply
// to a full conversation history. Variants differ only in how they compose a
// request and in the extra capabilities they expose:
//
//	base   plain participant with an optional persona
//	idea   creative entrepreneur, adds GenerateIdea
//	coder  Python developer, adds code extraction, execution and repair
package agent

import (
	"context"
	"errors"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/llm"
)

// Kind tags an agent variant.
type Kind string

const (
	KindBase  Kind = "base"
	KindIdea  Kind = "idea"
	KindCoder Kind = "coder"
)

// Sentinel errors for agent construction and lookup.
var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrAgentExists    = errors.New("agent already registered")
	ErrEmptyAgentName = errors.New("agent name is empty")
	ErrUnknownKind    = errors.New("unknown agent kind")
)

// Agent is a named participant driven by a completion backend.
type Agent interface {
	// Name is the stable identity used as message sender.
	Name() string
	// Kind reports the variant.
	Kind() Kind
	// Complete sends messages to the backend after applying the agent's
	// request composition. The caller's slice is never modified.
	Complete(ctx context.Context, messages []protocol.Message) (string, error)
	// Reply produces the agent's next message given the entire history.
	Reply(ctx context.Context, history []protocol.Message) (string, error)
}

// composeFunc rewrites an outgoing request. It must not modify its input.
type composeFunc func([]protocol.Message) []protocol.Message

// Base is the default agent. Variants embed it and install a compose hook
// instead of overriding methods.
type Base struct {
	name    string
	kind    Kind
	client  llm.Client
	compose composeFunc
}

// NewBase creates a plain agent. A non-empty persona is sent as a leading
// system message on every request.
func NewBase(name string, client llm.Client, persona string) *Base {
	return newBase(name, KindBase, client, prependSystem(persona))
}

func newBase(name string, kind Kind, client llm.Client, compose composeFunc) *Base {
	return &Base{name: name, kind: kind, client: client, compose: compose}
}

func (a *Base) Name() string {
	return a.name
}

func (a *Base) Kind() Kind {
	return a.kind
}

func (a *Base) Complete(ctx context.Context, messages []protocol.Message) (string, error) {
	if a.compose != nil {
		messages = a.compose(messages)
	}
	return a.client.Complete(ctx, messages)
}

func (a *Base) Reply(ctx context.Context, history []protocol.Message) (string, error) {
	return a.Complete(ctx, history)
}

func prependSystem(prompt string) composeFunc {
	if prompt == "" {
		return nil
	}
	return func(messages []protocol.Message) []protocol.Message {
		out := make([]protocol.Message, 0, len(messages)+1)
		out = append(out, protocol.NewMessage(protocol.RoleSystem, prompt))
		return append(out, messages...)
	}
}

func appendSystem(prompt string) composeFunc {
	if prompt == "" {
		return nil
	}
	return func(messages []protocol.Message) []protocol.Message {
		out := make([]protocol.Message, 0, len(messages)+1)
		out = append(out, messages...)
		return append(out, protocol.NewMessage(protocol.RoleSystem, prompt))
	}
}
