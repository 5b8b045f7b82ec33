package chatroom

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/llm"
	"github.com/tailored-agentic-units/chatroom/logger"
	"github.com/tailored-agentic-units/chatroom/sandbox"
	"github.com/tailored-agentic-units/chatroom/store"
)

const (
	// EnvPrefix marks environment variables read by LoadConfig. Nested keys
	// are separated by a double underscore, e.g. CHATROOM_LLM__MODEL.
	EnvPrefix = "CHATROOM_"

	defaultTopic        = "Let's brainstorm project ideas and implement them."
	defaultPollInterval = time.Second
	defaultGateWindow   = 5
	defaultObserver     = "slog"
)

// Config holds initialization parameters for the coordinator and every
// subsystem it builds.
type Config struct {
	Topic        string         `json:"topic,omitempty" koanf:"topic"`
	PollInterval time.Duration  `json:"poll_interval,omitempty" koanf:"poll_interval" validate:"gte=0"`
	GateWindow   int            `json:"gate_window,omitempty" koanf:"gate_window" validate:"gte=0"`
	Observer     string         `json:"observer,omitempty" koanf:"observer"`
	LLM          llm.Config     `json:"llm" koanf:"llm"`
	Agents       []agent.Config `json:"agents,omitempty" koanf:"agents" validate:"omitempty,dive"`
	Sandbox      sandbox.Config `json:"sandbox" koanf:"sandbox"`
	Store        store.Config   `json:"store" koanf:"store"`
	Log          logger.Config  `json:"log" koanf:"log"`
}

// DefaultConfig returns a Config with defaults for all subsystems. Agents is
// left empty; AgentConfigs supplies the default lineup in that case.
func DefaultConfig() Config {
	return Config{
		Topic:        defaultTopic,
		PollInterval: defaultPollInterval,
		GateWindow:   defaultGateWindow,
		Observer:     defaultObserver,
		LLM:          llm.DefaultConfig(),
		Sandbox:      sandbox.DefaultConfig(),
		Store:        store.DefaultConfig(),
		Log:          logger.DefaultConfig(),
	}
}

// AgentConfigs returns the configured agents, or the default lineup when
// none are configured.
func (c *Config) AgentConfigs() []agent.Config {
	if len(c.Agents) == 0 {
		return agent.DefaultConfigs()
	}
	return c.Agents
}

// LoadConfig layers defaults, the JSON file at path (skipped when path is
// empty) and CHATROOM_ environment variables, then validates the result.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		if err := k.Load(rawMap(raw), nil); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints across all sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// transformEnv maps CHATROOM_LLM__MODEL to llm.model.
func transformEnv(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	if key == "" {
		return "", nil
	}
	return strings.ReplaceAll(strings.ToLower(key), "__", "."), value
}

// rawMap is a koanf.Provider for already-decoded data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
