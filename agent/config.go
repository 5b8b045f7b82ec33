package agent

import (
	"fmt"

	"github.com/tailored-agentic-units/chatroom/llm"
)

// Config describes one agent. Model overrides the shared llm model for this
// agent only. Prompt is the persona for base and idea agents and the
// appended instruction for coders.
type Config struct {
	Name   string `json:"name" koanf:"name" validate:"required"`
	Kind   Kind   `json:"kind" koanf:"kind" validate:"required,oneof=base idea coder"`
	Model  string `json:"model,omitempty" koanf:"model"`
	Prompt string `json:"prompt,omitempty" koanf:"prompt"`
}

// DefaultConfigs returns the two-agent lineup: an idea agent on the shared
// model and a Python coder on gpt-4.
func DefaultConfigs() []Config {
	return []Config{
		{Name: "IdeaAgent", Kind: KindIdea},
		{Name: "PythonAgent", Kind: KindCoder, Model: "gpt-4"},
	}
}

// New creates an agent from configuration using client for completions.
// exec is only used by coders and may be nil otherwise.
func New(cfg *Config, client llm.Client, exec Executor) (Agent, error) {
	if cfg.Name == "" {
		return nil, ErrEmptyAgentName
	}

	switch cfg.Kind {
	case KindBase, "":
		return NewBase(cfg.Name, client, cfg.Prompt), nil
	case KindIdea:
		return NewIdeaAgent(cfg.Name, client, cfg.Prompt), nil
	case KindCoder:
		if exec == nil {
			return nil, fmt.Errorf("coder %q requires an executor", cfg.Name)
		}
		return NewCoder(cfg.Name, client, exec, cfg.Prompt), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, cfg.Kind)
	}
}

// ClientFactory builds the completion client for an llm configuration.
type ClientFactory func(cfg *llm.Config) (llm.Client, error)

// Build creates a roster from configs, giving each agent its own client
// derived from base with the agent's model override applied.
func Build(configs []Config, base llm.Config, newClient ClientFactory, exec Executor) (*Roster, error) {
	if newClient == nil {
		newClient = llm.New
	}

	roster, err := NewRoster()
	if err != nil {
		return nil, err
	}

	for i := range configs {
		cfg := &configs[i]
		llmCfg := base.WithModel(cfg.Model)

		client, err := newClient(&llmCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for agent %q: %w", cfg.Name, err)
		}

		a, err := New(cfg, client, exec)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %q: %w", cfg.Name, err)
		}

		if err := roster.Register(a); err != nil {
			return nil, err
		}
	}

	return roster, nil
}
