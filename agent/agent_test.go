package agent_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tailored-agentic-units/chatroom/agent"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/llm"
	"github.com/tailored-agentic-units/chatroom/sandbox"
)

// --- Test helpers ---

// scriptedClient returns responses in order and records every request.
type scriptedClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  [][]protocol.Message
}

func (c *scriptedClient) Complete(_ context.Context, messages []protocol.Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, messages)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", errors.New("no more responses configured")
	}
	out := c.responses[0]
	c.responses = c.responses[1:]
	return out, nil
}

func (c *scriptedClient) lastRequest(t *testing.T) []protocol.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		t.Fatal("no requests recorded")
	}
	return c.requests[len(c.requests)-1]
}

// fakeExecutor returns a fixed result and records executed code.
type fakeExecutor struct {
	result sandbox.Result
	ran    []string
}

func (e *fakeExecutor) Run(_ context.Context, code string) sandbox.Result {
	e.ran = append(e.ran, code)
	return e.result
}

func history() []protocol.Message {
	return []protocol.Message{
		protocol.NewChatMessage(protocol.RoleSystem, protocol.SenderSystem, "You are AI agents in a brainstorming session."),
		protocol.NewChatMessage(protocol.RoleUser, protocol.SenderUser, "Let's build something."),
	}
}

// --- Base ---

func TestBase_ReplySendsHistory(t *testing.T) {
	client := &scriptedClient{responses: []string{"sure"}}
	a := agent.NewBase("Helper", client, "")

	got, err := a.Reply(context.Background(), history())
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if got != "sure" {
		t.Errorf("Reply() = %q, want %q", got, "sure")
	}

	sent := client.lastRequest(t)
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	if a.Kind() != agent.KindBase {
		t.Errorf("Kind() = %q, want %q", a.Kind(), agent.KindBase)
	}
}

func TestBase_PersonaPrepended(t *testing.T) {
	client := &scriptedClient{responses: []string{"ok"}}
	a := agent.NewBase("Critic", client, "You poke holes in plans.")

	h := history()
	if _, err := a.Reply(context.Background(), h); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	sent := client.lastRequest(t)
	if len(sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(sent))
	}
	if sent[0].Role != protocol.RoleSystem || sent[0].Content != "You poke holes in plans." {
		t.Errorf("first message = %+v, want persona", sent[0])
	}
	if len(h) != 2 {
		t.Errorf("caller history modified: len %d", len(h))
	}
}

func TestBase_ErrorPropagates(t *testing.T) {
	backendErr := errors.New("rate limited")
	a := agent.NewBase("Helper", &scriptedClient{err: backendErr}, "")

	if _, err := a.Reply(context.Background(), history()); !errors.Is(err, backendErr) {
		t.Errorf("Reply() error = %v, want %v", err, backendErr)
	}
}

// --- IdeaAgent ---

func TestIdeaAgent_GenerateIdea(t *testing.T) {
	client := &scriptedClient{responses: []string{"A marketplace for plants."}}
	a := agent.NewIdeaAgent("IdeaAgent", client, "")

	got, err := a.GenerateIdea(context.Background(), "gardening")
	if err != nil {
		t.Fatalf("GenerateIdea() error = %v", err)
	}
	if got != "A marketplace for plants." {
		t.Errorf("GenerateIdea() = %q", got)
	}

	sent := client.lastRequest(t)
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	if sent[1].Content != "Generate an idea about gardening." {
		t.Errorf("user prompt = %q", sent[1].Content)
	}
	if a.Kind() != agent.KindIdea {
		t.Errorf("Kind() = %q, want %q", a.Kind(), agent.KindIdea)
	}
}

// --- Coder ---

func TestCoder_InstructionAppended(t *testing.T) {
	client := &scriptedClient{responses: []string{"```python\nprint(1)\n```"}}
	c := agent.NewCoder("PythonAgent", client, &fakeExecutor{}, "")

	h := history()
	if _, err := c.Reply(context.Background(), h); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	sent := client.lastRequest(t)
	if len(sent) != len(h)+1 {
		t.Fatalf("sent %d messages, want %d", len(sent), len(h)+1)
	}
	last := sent[len(sent)-1]
	if last.Role != protocol.RoleSystem || last.Content != agent.CoderPrompt {
		t.Errorf("last message = %+v, want coder instruction", last)
	}
	if len(h) != 2 {
		t.Errorf("caller history modified: len %d", len(h))
	}
}

func TestCoder_Process(t *testing.T) {
	tests := []struct {
		name        string
		language    string
		result      sandbox.Result
		wantStatus  sandbox.Status
		wantMessage string
		wantDetails string
		wantRuns    int
	}{
		{
			name:        "python success",
			language:    "This is Python.",
			result:      sandbox.Result{Status: sandbox.StatusSuccess, Output: "42\n"},
			wantStatus:  sandbox.StatusSuccess,
			wantMessage: agent.MsgExecuted,
			wantDetails: "42\n",
			wantRuns:    1,
		},
		{
			name:        "python failure",
			language:    "python",
			result:      sandbox.Result{Status: sandbox.StatusError, Output: "NameError: x", ExitCode: 1},
			wantStatus:  sandbox.StatusError,
			wantMessage: agent.MsgErrors,
			wantDetails: "NameError: x",
			wantRuns:    1,
		},
		{
			name:        "python timeout",
			language:    "PYTHON",
			result:      sandbox.Result{Status: sandbox.StatusError, Output: sandbox.TimeoutMessage, TimedOut: true},
			wantStatus:  sandbox.StatusError,
			wantMessage: agent.MsgErrors,
			wantDetails: sandbox.TimeoutMessage,
			wantRuns:    1,
		},
		{
			name:        "not python",
			language:    "JavaScript",
			wantStatus:  sandbox.StatusError,
			wantMessage: agent.MsgNotPython,
			wantRuns:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{result: tt.result}
			c := agent.NewCoder("PythonAgent", &scriptedClient{responses: []string{tt.language}}, exec, "")

			got, err := c.Process(context.Background(), "x = 1")
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.Details != tt.wantDetails {
				t.Errorf("Details = %q, want %q", got.Details, tt.wantDetails)
			}
			if len(exec.ran) != tt.wantRuns {
				t.Errorf("executed %d times, want %d", len(exec.ran), tt.wantRuns)
			}
		})
	}
}

func TestCoder_Process_DetectionFailure(t *testing.T) {
	backendErr := errors.New("connection reset")
	exec := &fakeExecutor{}
	c := agent.NewCoder("PythonAgent", &scriptedClient{err: backendErr}, exec, "")

	_, err := c.Process(context.Background(), "x = 1")
	if !errors.Is(err, backendErr) {
		t.Errorf("Process() error = %v, want %v", err, backendErr)
	}
	if len(exec.ran) != 0 {
		t.Error("code should not run when detection fails")
	}
}

func TestCoder_HandleGenerated(t *testing.T) {
	text := "Plan:\n```python\nprint('a')\n```\nThen:\n```python\nprint('b')\n```"
	exec := &fakeExecutor{result: sandbox.Result{Status: sandbox.StatusSuccess, Output: "ok"}}
	c := agent.NewCoder("PythonAgent", &scriptedClient{responses: []string{"python", "python"}}, exec, "")

	outcomes, err := c.HandleGenerated(context.Background(), text)
	if err != nil {
		t.Fatalf("HandleGenerated() error = %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	want := []string{"print('a')", "print('b')"}
	for i, code := range exec.ran {
		if code != want[i] {
			t.Errorf("run %d = %q, want %q", i, code, want[i])
		}
	}
	for i, o := range outcomes {
		if !o.OK() {
			t.Errorf("outcome %d not OK: %+v", i, o)
		}
	}
}

func TestCoder_HandleGenerated_NoBlocks(t *testing.T) {
	client := &scriptedClient{}
	c := agent.NewCoder("PythonAgent", client, &fakeExecutor{}, "")

	outcomes, err := c.HandleGenerated(context.Background(), "No code here.")
	if err != nil {
		t.Fatalf("HandleGenerated() error = %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Message != agent.MsgNoBlocks || outcomes[0].OK() {
		t.Errorf("outcomes = %+v, want single no-blocks error", outcomes)
	}
	if len(client.requests) != 0 {
		t.Error("no backend call expected without code blocks")
	}
}

func TestCoder_RequestFixAndGenerate(t *testing.T) {
	client := &scriptedClient{responses: []string{"```python\nfixed()\n```", "```python\nmain()\n```"}}
	c := agent.NewCoder("PythonAgent", client, &fakeExecutor{}, "")

	fixed, err := c.RequestFix(context.Background(), "NameError: name 'x' is not defined")
	if err != nil {
		t.Fatalf("RequestFix() error = %v", err)
	}
	if got := c.ExtractCode(fixed); len(got) != 1 || got[0] != "fixed()" {
		t.Errorf("ExtractCode(fix) = %v", got)
	}
	sent := client.lastRequest(t)
	if !strings.Contains(sent[1].Content, "NameError") {
		t.Errorf("fix prompt missing error details: %q", sent[1].Content)
	}

	generated, err := c.GenerateCode(context.Background(), "a todo app")
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if !strings.Contains(generated, "main()") {
		t.Errorf("GenerateCode() = %q", generated)
	}
	sent = client.lastRequest(t)
	if sent[1].Content != "Generate Python code for the idea: a todo app." {
		t.Errorf("generate prompt = %q", sent[1].Content)
	}
}

// --- Roster ---

func TestRoster_OrderAndLookup(t *testing.T) {
	client := &scriptedClient{}
	idea := agent.NewIdeaAgent("IdeaAgent", client, "")
	coder := agent.NewCoder("PythonAgent", client, &fakeExecutor{}, "")
	critic := agent.NewBase("Critic", client, "")

	r, err := agent.NewRoster(idea, coder, critic)
	if err != nil {
		t.Fatalf("NewRoster() error = %v", err)
	}

	want := []string{"IdeaAgent", "PythonAgent", "Critic"}
	got := r.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	a, err := r.Get("PythonAgent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if a.Kind() != agent.KindCoder {
		t.Errorf("Get(PythonAgent).Kind() = %q", a.Kind())
	}

	first, ok := r.FirstOfKind(agent.KindIdea)
	if !ok || first.Name() != "IdeaAgent" {
		t.Errorf("FirstOfKind(idea) = %v, %v", first, ok)
	}
	if _, ok := r.FirstOfKind("none"); ok {
		t.Error("FirstOfKind(none) should report false")
	}
}

func TestRoster_Errors(t *testing.T) {
	client := &scriptedClient{}
	r, _ := agent.NewRoster()

	if err := r.Register(agent.NewBase("", client, "")); !errors.Is(err, agent.ErrEmptyAgentName) {
		t.Errorf("Register(empty) error = %v, want %v", err, agent.ErrEmptyAgentName)
	}
	if err := r.Register(agent.NewBase("A", client, "")); err != nil {
		t.Fatalf("Register(A) error = %v", err)
	}
	if err := r.Register(agent.NewBase("A", client, "")); !errors.Is(err, agent.ErrAgentExists) {
		t.Errorf("Register(duplicate) error = %v, want %v", err, agent.ErrAgentExists)
	}
	if _, err := r.Get("missing"); !errors.Is(err, agent.ErrAgentNotFound) {
		t.Errorf("Get(missing) error = %v, want %v", err, agent.ErrAgentNotFound)
	}
}

// --- Config ---

func TestNew_FromConfig(t *testing.T) {
	client := &scriptedClient{}

	tests := []struct {
		name    string
		cfg     agent.Config
		exec    agent.Executor
		want    agent.Kind
		wantErr error
	}{
		{"base", agent.Config{Name: "A"}, nil, agent.KindBase, nil},
		{"idea", agent.Config{Name: "I", Kind: agent.KindIdea}, nil, agent.KindIdea, nil},
		{"coder", agent.Config{Name: "C", Kind: agent.KindCoder}, &fakeExecutor{}, agent.KindCoder, nil},
		{"empty name", agent.Config{Kind: agent.KindIdea}, nil, "", agent.ErrEmptyAgentName},
		{"unknown kind", agent.Config{Name: "X", Kind: "poet"}, nil, "", agent.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := agent.New(&tt.cfg, client, tt.exec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if a.Kind() != tt.want {
				t.Errorf("Kind() = %q, want %q", a.Kind(), tt.want)
			}
		})
	}

	if _, err := agent.New(&agent.Config{Name: "C", Kind: agent.KindCoder}, client, nil); err == nil {
		t.Error("coder without executor should fail")
	}
}

func TestBuild_PerAgentModel(t *testing.T) {
	var models []string
	factory := func(cfg *llm.Config) (llm.Client, error) {
		models = append(models, cfg.Model)
		return &scriptedClient{}, nil
	}

	r, err := agent.Build(agent.DefaultConfigs(), llm.DefaultConfig(), factory, &fakeExecutor{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if len(models) != 2 || models[0] != "gpt-4o-mini" || models[1] != "gpt-4" {
		t.Errorf("models = %v, want [gpt-4o-mini gpt-4]", models)
	}
}

func TestBuild_Duplicate(t *testing.T) {
	configs := []agent.Config{{Name: "A", Kind: agent.KindBase}, {Name: "A", Kind: agent.KindIdea}}
	factory := func(*llm.Config) (llm.Client, error) { return &scriptedClient{}, nil }

	if _, err := agent.Build(configs, llm.DefaultConfig(), factory, nil); !errors.Is(err, agent.ErrAgentExists) {
		t.Errorf("Build() error = %v, want %v", err, agent.ErrAgentExists)
	}
}
