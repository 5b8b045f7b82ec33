package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/artifact"
	"github.com/tailored-agentic-units/chatroom/chatroom"
	"github.com/tailored-agentic-units/chatroom/display"
	"github.com/tailored-agentic-units/chatroom/observability"
	"github.com/tailored-agentic-units/chatroom/store"
)

func newChatCmd(a *app) *cobra.Command {
	var (
		topic string
		plain bool
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation between the agents and you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if topic == "" {
				topic = a.cfg.Topic
			}
			interactive := !plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)
			return a.chat(cmd.Context(), topic, interactive, fresh)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "conversation topic (overrides config)")
	cmd.Flags().BoolVar(&plain, "plain", false, "line-oriented transcript instead of the full-screen UI")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "delete previously exported idea and code files before starting")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) chat(parent context.Context, topic string, interactive, fresh bool) error {
	// The full-screen UI owns the terminal, so logs go to the configured
	// file or nowhere.
	var logOut io.Writer = os.Stderr
	if interactive {
		logOut = io.Discard
	}
	log, closer, err := a.setupLogger(logOut)
	if err != nil {
		return err
	}
	defer closer.Close()

	roster, err := a.roster()
	if err != nil {
		return err
	}

	senders := display.Senders{}
	if ideas, ok := roster.FirstOfKind(agent.KindIdea); ok {
		senders.Idea = ideas.Name()
	}
	if coder, ok := roster.FirstOfKind(agent.KindCoder); ok {
		senders.Code = coder.Name()
	}

	base, err := observability.Lookup(a.cfg.Observer, log)
	if err != nil {
		return err
	}

	exporter := display.NewExporter(artifact.NewBoard(senders.Idea, senders.Code), store.New(&a.cfg.Store), log)
	if fresh {
		if err := exporter.Clear(parent); err != nil {
			return err
		}
	}

	var coord *chatroom.Coordinator
	inject := display.InjectorFunc(func(text string) error {
		return coord.InjectUserMessage(text)
	})

	var (
		sink     chatroom.Sink
		observer observability.Observer = base
		tui      *display.TUI
	)
	if interactive {
		tui = display.NewTUI(inject, senders, tea.WithAltScreen())
		sink = chatroom.Sinks(exporter, tui)
		observer = observability.NewMultiObserver(base, tui)
	} else {
		sink = chatroom.Sinks(exporter, display.NewPlain(os.Stdout))
	}

	coord, err = chatroom.New(a.cfg,
		chatroom.WithRoster(roster),
		chatroom.WithObserver(observer),
		chatroom.WithSink(sink),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return coord.Start(gctx, topic)
	})

	g.Go(func() error {
		if tui != nil {
			defer cancel()
			return tui.Run(gctx)
		}
		return display.ReadInput(gctx, os.Stdin, coord, os.Stderr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
