// Package llm provides the completion client agents use to talk to a
// language-model backend. The backend is opaque: an ordered list of
// role-tagged messages goes in, generated text comes out.
package llm

import (
	"context"
	"errors"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// Sentinel errors for completion clients.
var (
	ErrEmptyResponse       = errors.New("completion returned no choices")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrNoMessages          = errors.New("completion request has no messages")
)

// Client requests a completion for an ordered list of messages. Failures
// (network, auth, rate limiting) are returned as-is; clients never retry.
type Client interface {
	Complete(ctx context.Context, messages []protocol.Message) (string, error)
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func(ctx context.Context, messages []protocol.Message) (string, error)

func (f ClientFunc) Complete(ctx context.Context, messages []protocol.Message) (string, error) {
	return f(ctx, messages)
}
