package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/chatroom/store"
)

func newIdeaCmd(a *app) *cobra.Command {
	var (
		topic string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "idea",
		Short: "Ask the idea agent for a standalone project idea",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closer, err := a.setupLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			return a.idea(cmd, topic, out)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "what the idea should be about")
	cmd.Flags().StringVar(&out, "out", "", "write the idea to this file (defaults to idea.txt in the configured store or working directory)")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func (a *app) idea(cmd *cobra.Command, topic, out string) error {
	roster, err := a.roster()
	if err != nil {
		return err
	}
	ideas, err := a.ideaAgent(roster)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	text, err := ideas.GenerateIdea(ctx, topic)
	if err != nil {
		return fmt.Errorf("idea generation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	return a.saveArtifact(ctx, out, store.KeyIdea, text)
}

// workDir backs idea and code files when neither an explicit path nor a
// store is configured.
const workDir = "."

// artifactLocation resolves an explicit file path, else the configured store,
// else the working directory, together with the key to use.
func (a *app) artifactLocation(path, defaultKey string) (store.Store, string) {
	if path != "" {
		return store.NewFileStore(filepath.Dir(path)), filepath.Base(path)
	}
	if s := store.New(&a.cfg.Store); s != nil {
		return s, defaultKey
	}
	return store.NewFileStore(workDir), defaultKey
}

func (a *app) saveArtifact(ctx context.Context, path, defaultKey, text string) error {
	s, key := a.artifactLocation(path, defaultKey)
	if err := store.SaveText(ctx, s, key, text); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	slog.Info("artifact saved", "key", key, "path", path)
	return nil
}
