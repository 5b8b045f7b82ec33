package llm

// Provider names a completion backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderMock      Provider = "mock"
)

const (
	defaultProvider = ProviderOpenAI
	defaultModel    = "gpt-4o-mini"
)

// Config selects and parameterizes a completion backend.
type Config struct {
	Provider     Provider `json:"provider,omitempty" koanf:"provider" validate:"omitempty,oneof=openai ollama anthropic mock"`
	Model        string   `json:"model,omitempty" koanf:"model"`
	APIKey       string   `json:"api_key,omitempty" koanf:"api_key"`
	BaseURL      string   `json:"base_url,omitempty" koanf:"base_url" validate:"omitempty,url"`
	Organization string   `json:"organization,omitempty" koanf:"organization"`
	Temperature  float64  `json:"temperature,omitempty" koanf:"temperature" validate:"gte=0,lte=2"`
}

// DefaultConfig returns the OpenAI configuration used by the chatroom agents.
// The API key falls back to OPENAI_API_KEY inside the provider SDK.
func DefaultConfig() Config {
	return Config{
		Provider: defaultProvider,
		Model:    defaultModel,
	}
}

// WithModel returns a copy of c using model when it is non-empty.
func (c Config) WithModel(model string) Config {
	if model != "" {
		c.Model = model
	}
	return c
}
