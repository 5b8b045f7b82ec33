// Package chatroom runs a turn-taking conversation among LLM agents and one
// human participant.
//
// A Coordinator owns the shared history. Start seeds it with the topic and
// runs the broadcast loop: every round each agent, in registration order,
// passes through the reply gate and, when allowed, answers with the whole
// history in view. Rounds in which nobody speaks are followed by a short wait
// that a user message cuts short.
//
//	c, err := chatroom.New(&cfg, chatroom.WithSink(sink))
//	go c.Start(ctx, "Let's build a CLI todo app.")
//	err = c.InjectUserMessage("Use Python please")
package chatroom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/observability"
	"github.com/tailored-agentic-units/chatroom/sandbox"
	"github.com/tailored-agentic-units/chatroom/session"
)

const seedPrefix = "You are AI agents in a brainstorming session. "

// Option configures a Coordinator after config-driven initialization.
type Option func(*Coordinator)

// WithRoster overrides the config-created agents.
func WithRoster(r *agent.Roster) Option {
	return func(c *Coordinator) { c.roster = r }
}

// WithSession overrides the default in-memory session.
func WithSession(s session.Session) Option {
	return func(c *Coordinator) { c.session = s }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithSink sets the receiver of appended messages.
func WithSink(s Sink) Option {
	return func(c *Coordinator) { c.sink = s }
}

// WithPollInterval sets how long an idle loop waits for a user message.
func WithPollInterval(d time.Duration) Option {
	return func(c *Coordinator) { c.pollInterval = d }
}

// WithGateWindow sets how many recent messages the reply gate shows the model.
func WithGateWindow(n int) Option {
	return func(c *Coordinator) { c.gateWindow = n }
}

// Coordinator is the conversation state machine. It is idle until Start and
// running until Start's context ends.
type Coordinator struct {
	roster       *agent.Roster
	session      session.Session
	observer     observability.Observer
	sink         Sink
	pollInterval time.Duration
	gateWindow   int

	mu      sync.Mutex // serializes append and sink notification
	running atomic.Bool
	wake    chan struct{}
}

// New creates a Coordinator from configuration. Agents are built from
// cfg.Agents, each with its own completion client, and coders share a
// sandbox runner built from cfg.Sandbox.
func New(cfg *Config, opts ...Option) (*Coordinator, error) {
	name := cfg.Observer
	if name == "" {
		name = defaultObserver
	}
	observer, err := observability.Lookup(name, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to create observer: %w", err)
	}

	c := &Coordinator{
		session:      session.NewMemorySession(),
		observer:     observer,
		pollInterval: cfg.PollInterval,
		gateWindow:   cfg.GateWindow,
		wake:         make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.roster == nil {
		runner, err := sandbox.New(&cfg.Sandbox)
		if err != nil {
			return nil, fmt.Errorf("failed to create sandbox: %w", err)
		}

		roster, err := agent.Build(cfg.AgentConfigs(), cfg.LLM, nil, runner)
		if err != nil {
			return nil, fmt.Errorf("failed to create agents: %w", err)
		}
		c.roster = roster
	}

	if c.sink == nil {
		c.sink = Sinks()
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.gateWindow <= 0 {
		c.gateWindow = defaultGateWindow
	}

	return c, nil
}

// Roster returns the participating agents.
func (c *Coordinator) Roster() *agent.Roster {
	return c.roster
}

// Session returns the shared history.
func (c *Coordinator) Session() session.Session {
	return c.session
}

// Running reports whether Start is active.
func (c *Coordinator) Running() bool {
	return c.running.Load()
}

// Start seeds the history with topic and runs the broadcast loop until ctx
// is done, returning ctx.Err(). It returns ErrAlreadyRunning if a loop is
// already active.
func (c *Coordinator) Start(ctx context.Context, topic string) error {
	if c.roster.Len() == 0 {
		return ErrNoAgents
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	c.post(protocol.NewChatMessage(protocol.RoleSystem, protocol.SenderSystem, seedPrefix+topic))

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "chatroom.Start",
		Data: map[string]any{
			"session": c.session.ID(),
			"agents":  c.roster.Names(),
			"topic":   topic,
		},
	})

	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventRound,
			Level:     observability.LevelDebug,
			Timestamp: time.Now(),
			Source:    "chatroom.Start",
			Data:      map[string]any{"round": round, "history": c.session.Len()},
		})

		if c.RunRound(ctx) > 0 {
			continue
		}

		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventIdle,
			Level:     observability.LevelDebug,
			Timestamp: time.Now(),
			Source:    "chatroom.Start",
			Data:      map[string]any{"round": round, "wait": c.pollInterval.String()},
		})

		timer.Reset(c.pollInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
		case <-timer.C:
		}
	}
}

// RunRound gives every agent one chance to speak, in registration order, and
// returns how many replied. Each gate sees the history as left by the agents
// before it in the same round.
func (c *Coordinator) RunRound(ctx context.Context) int {
	replies := 0
	for _, a := range c.roster.List() {
		if ctx.Err() != nil {
			return replies
		}

		ok, err := c.ShouldReply(ctx, a)
		if err != nil {
			c.fail(ctx, a, "gate", err)
			continue
		}
		if !ok {
			continue
		}

		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventTurnStart,
			Level:     observability.LevelDebug,
			Timestamp: time.Now(),
			Source:    "chatroom.RunRound",
			Data:      map[string]any{"agent": a.Name()},
		})

		start := time.Now()
		content, err := a.Reply(ctx, c.session.Messages())
		if err != nil {
			c.fail(ctx, a, "reply", err)
			continue
		}

		c.post(protocol.NewChatMessage(protocol.RoleAssistant, a.Name(), content))
		replies++

		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventReply,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "chatroom.RunRound",
			Data: map[string]any{
				"agent":    a.Name(),
				"length":   len(content),
				"duration": time.Since(start).String(),
			},
		})
	}
	return replies
}

// ShouldReply runs the reply gate for a against the current last message.
func (c *Coordinator) ShouldReply(ctx context.Context, a agent.Agent) (bool, error) {
	decision, err := Gate(ctx, a, c.session.Tail(c.gateWindow))
	if err != nil {
		return false, err
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventGate,
		Level:     observability.LevelDebug,
		Timestamp: time.Now(),
		Source:    "chatroom.ShouldReply",
		Data:      map[string]any{"agent": a.Name(), "decision": string(decision)},
	})

	return decision.Reply(), nil
}

// InjectUserMessage appends text as a message from the human participant and
// wakes an idle loop. It is safe to call from any goroutine, before or
// during Start.
func (c *Coordinator) InjectUserMessage(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.post(protocol.NewChatMessage(protocol.RoleUser, protocol.SenderUser, text))

	c.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventUser,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "chatroom.InjectUserMessage",
		Data:      map[string]any{"length": len(text)},
	})

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

func (c *Coordinator) post(msg protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Append(msg)
	c.sink.OnMessage(msg)
}

func (c *Coordinator) fail(ctx context.Context, a agent.Agent, stage string, err error) {
	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventError,
		Level:     observability.LevelError,
		Timestamp: time.Now(),
		Source:    "chatroom.RunRound",
		Data: map[string]any{
			"agent": a.Name(),
			"stage": stage,
			"error": err.Error(),
		},
	})
}
