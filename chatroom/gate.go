package chatroom

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

const (
	gateSystemPrompt = "You are an AI agent deciding whether to reply to the conversation."
	gateQuestion     = "Should you contribute a message to this conversation? Reply 'Yes' or 'No'."
	gateAffirmative  = "yes"
)

// Decision explains a reply-gate outcome.
type Decision string

const (
	DecisionEmpty    Decision = "empty"     // nothing to reply to
	DecisionSelf     Decision = "self"      // last message is the agent's own
	DecisionUser     Decision = "user"      // the human spoke; always reply
	DecisionModelYes Decision = "model.yes" // the model chose to contribute
	DecisionModelNo  Decision = "model.no"  // the model declined
)

// Reply reports whether the decision lets the agent speak.
func (d Decision) Reply() bool {
	return d == DecisionUser || d == DecisionModelYes
}

// gateEntry is the shape of a message in the gate transcript.
type gateEntry struct {
	Role    protocol.Role `json:"role"`
	Content string        `json:"content"`
	Sender  string        `json:"sender"`
}

// Gate decides whether a should speak next, judging only the current last
// message. Self-authored messages never get a reply, user messages always
// do, and anything else is put to the agent's own model as a yes/no question
// over the most recent window messages.
func Gate(ctx context.Context, a agent.Agent, recent []protocol.Message) (Decision, error) {
	if len(recent) == 0 {
		return DecisionEmpty, nil
	}

	last := recent[len(recent)-1]
	switch {
	case last.IsFrom(a.Name()):
		return DecisionSelf, nil
	case last.IsFrom(protocol.SenderUser):
		return DecisionUser, nil
	}

	prompt, err := gatePrompt(recent)
	if err != nil {
		return DecisionModelNo, err
	}

	answer, err := a.Complete(ctx, prompt)
	if err != nil {
		return DecisionModelNo, fmt.Errorf("reply gate for %s: %w", a.Name(), err)
	}

	if strings.Contains(strings.ToLower(answer), gateAffirmative) {
		return DecisionModelYes, nil
	}
	return DecisionModelNo, nil
}

func gatePrompt(recent []protocol.Message) ([]protocol.Message, error) {
	entries := make([]gateEntry, len(recent))
	for i, m := range recent {
		entries[i] = gateEntry{Role: m.Role, Content: m.Content, Sender: m.Sender}
	}

	transcript, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gate transcript: %w", err)
	}

	return []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, gateSystemPrompt),
		protocol.NewMessage(protocol.RoleAssistant, "Conversation so far: "+string(transcript)),
		protocol.NewMessage(protocol.RoleUser, gateQuestion),
	}, nil
}
