package llm

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel creates the langchaingo model for cfg.Provider.
func NewModel(cfg *Config) (llms.Model, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAIModel(cfg)
	case ProviderOllama:
		return newOllamaModel(cfg)
	case ProviderAnthropic:
		return newAnthropicModel(cfg)
	case ProviderMock:
		return NewMockModel(cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

func newOpenAIModel(cfg *Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
	}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Organization != "" {
		opts = append(opts, openai.WithOrganization(cfg.Organization))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai model: %w", err)
	}
	return model, nil
}

func newOllamaModel(cfg *Config) (llms.Model, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama model: %w", err)
	}
	return model, nil
}

func newAnthropicModel(cfg *Config) (llms.Model, error) {
	if cfg.Organization != "" {
		return nil, fmt.Errorf("anthropic does not support organization")
	}

	opts := []anthropic.Option{
		anthropic.WithModel(cfg.Model),
	}
	if cfg.APIKey != "" {
		opts = append(opts, anthropic.WithToken(cfg.APIKey))
	}

	model, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic model: %w", err)
	}
	return model, nil
}
