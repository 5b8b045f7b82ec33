package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/artifact"
	"github.com/tailored-agentic-units/chatroom/store"
)

// errNoIdea is returned by the code command when the idea file is missing.
var errNoIdea = errors.New("no idea file")

// maxListedArtifacts caps the candidates named when the idea file is missing.
const maxListedArtifacts = 10

func newCodeCmd(a *app) *cobra.Command {
	var (
		ideaPath string
		fix      bool
	)

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate, check and run Python code for the saved idea",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closer, err := a.setupLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			return a.code(cmd, ideaPath, fix)
		},
	}

	cmd.Flags().StringVar(&ideaPath, "idea", "", "idea file to implement (defaults to idea.txt in the configured store or working directory)")
	cmd.Flags().BoolVar(&fix, "fix", false, "ask for a corrected version when a block fails")
	return cmd
}

func (a *app) code(cmd *cobra.Command, ideaPath string, fix bool) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	s, key := a.artifactLocation(ideaPath, store.KeyIdea)
	idea, err := store.LoadText(ctx, s, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return missingIdea(ctx, s, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read idea: %w", err)
	}

	roster, err := a.roster()
	if err != nil {
		return err
	}
	coder, err := a.coder(roster)
	if err != nil {
		return err
	}

	generated, err := coder.GenerateCode(ctx, strings.TrimSpace(idea))
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}
	fmt.Fprintln(w, generated)

	if blocks := artifact.ExtractPython(generated); len(blocks) > 0 {
		if err := a.saveArtifact(ctx, "", store.KeyCode, strings.Join(blocks, "\n\n")); err != nil {
			return err
		}
	}

	outcomes, err := coder.HandleGenerated(ctx, generated)
	if err != nil {
		return err
	}
	printOutcomes(w, outcomes)

	if !fix {
		return nil
	}
	for _, o := range outcomes {
		if o.OK() || o.Details == "" {
			continue
		}
		fixed, err := coder.RequestFix(ctx, o.Details)
		if err != nil {
			return fmt.Errorf("fix request failed: %w", err)
		}
		fmt.Fprintf(w, "\nSuggested fix:\n%s\n", fixed)
	}
	return nil
}

func printOutcomes(w io.Writer, outcomes []agent.Outcome) {
	for i, o := range outcomes {
		fmt.Fprintf(w, "\n[%d] %s: %s\n", i+1, o.Status, o.Message)
		if o.Details != "" {
			fmt.Fprintln(w, strings.TrimRight(o.Details, "\n"))
		}
	}
}

// missingIdea reports a missing idea file along with the text files the
// store does hold, so a misnamed idea is easy to spot.
func missingIdea(ctx context.Context, s store.Store, key string) error {
	keys, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", errNoIdea, key)
	}

	var candidates []string
	for _, k := range keys {
		if filepath.Ext(k) == ".txt" {
			candidates = append(candidates, k)
		}
		if len(candidates) == maxListedArtifacts {
			break
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %s (run the idea command first)", errNoIdea, key)
	}
	return fmt.Errorf("%w: %s (stored: %s)", errNoIdea, key, strings.Join(candidates, ", "))
}
