package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/chatroom"
	"github.com/tailored-agentic-units/chatroom/logger"
	"github.com/tailored-agentic-units/chatroom/sandbox"
)

// app carries state shared by every subcommand once the root has loaded
// configuration.
type app struct {
	configFile string
	envFile    string
	logLevel   string
	logJSON    bool
	logFile    string

	cfg *chatroom.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "chatroom",
		Short:        "AI agents brainstorming and coding together",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a JSON config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&a.logJSON, "log-json", false, "emit logs as JSON")
	flags.StringVar(&a.logFile, "log-file", "", "append logs to this file (overrides config)")

	cmd.AddCommand(
		newChatCmd(a),
		newIdeaCmd(a),
		newCodeCmd(a),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", a.envFile, err)
		}
	}

	cfg, err := chatroom.LoadConfig(a.configFile)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = logger.LogLevel(a.logLevel)
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

// setupLogger installs the process logger. Records go to cfg.Log.File when
// set and to fallback otherwise.
func (a *app) setupLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	log, closer, err := logger.Open(&a.cfg.Log, fallback)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return log, closer, nil
}

// roster builds the configured agents with a shared sandbox runner.
func (a *app) roster() (*agent.Roster, error) {
	runner, err := sandbox.New(&a.cfg.Sandbox)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox: %w", err)
	}
	return agent.Build(a.cfg.AgentConfigs(), a.cfg.LLM, nil, runner)
}

func (a *app) ideaAgent(r *agent.Roster) (*agent.IdeaAgent, error) {
	found, ok := r.FirstOfKind(agent.KindIdea)
	if !ok {
		return nil, fmt.Errorf("%w: no %s agent configured", agent.ErrAgentNotFound, agent.KindIdea)
	}
	return found.(*agent.IdeaAgent), nil
}

func (a *app) coder(r *agent.Roster) (*agent.Coder, error) {
	found, ok := r.FirstOfKind(agent.KindCoder)
	if !ok {
		return nil, fmt.Errorf("%w: no %s agent configured", agent.ErrAgentNotFound, agent.KindCoder)
	}
	return found.(*agent.Coder), nil
}
