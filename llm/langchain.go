package llm

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tmc/langchaingo/llms"
)

// LangChainClient adapts a langchaingo model to the Client interface.
type LangChainClient struct {
	model   llms.Model
	options []llms.CallOption
}

// NewLangChainClient wraps model. Options are applied to every call.
func NewLangChainClient(model llms.Model, options ...llms.CallOption) *LangChainClient {
	return &LangChainClient{model: model, options: options}
}

// New creates a Client for the provider named in cfg.
func New(cfg *Config) (Client, error) {
	model, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}

	var options []llms.CallOption
	if cfg.Temperature > 0 {
		options = append(options, llms.WithTemperature(cfg.Temperature))
	}
	return NewLangChainClient(model, options...), nil
}

func (c *LangChainClient) Complete(ctx context.Context, messages []protocol.Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	resp, err := c.model.GenerateContent(ctx, convertMessages(messages), c.options...)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

func convertMessages(messages []protocol.Message) []llms.MessageContent {
	converted := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		converted = append(converted, llms.TextParts(mapRole(msg.Role), msg.Content))
	}
	return converted
}

func mapRole(role protocol.Role) llms.ChatMessageType {
	switch role {
	case protocol.RoleSystem:
		return llms.ChatMessageTypeSystem
	case protocol.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
