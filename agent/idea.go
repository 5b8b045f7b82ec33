package agent

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/llm"
)

const ideaPrompt = "You are a creative entrepreneur that generates thought out plans and ideas."

// IdeaAgent proposes and refines project ideas. Its messages feed the idea view.
type IdeaAgent struct {
	*Base
}

// NewIdeaAgent creates an idea agent. The persona is optional; in the
// chatroom the idea agent speaks with the conversation's own system message.
func NewIdeaAgent(name string, client llm.Client, persona string) *IdeaAgent {
	return &IdeaAgent{Base: newBase(name, KindIdea, client, prependSystem(persona))}
}

// GenerateIdea asks for a standalone idea about topic.
func (a *IdeaAgent) GenerateIdea(ctx context.Context, topic string) (string, error) {
	return a.Complete(ctx, []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, ideaPrompt),
		protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("Generate an idea about %s.", topic)),
	})
}
