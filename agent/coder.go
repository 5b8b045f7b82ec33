package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/chatroom/artifact"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/llm"
	"github.com/tailored-agentic-units/chatroom/sandbox"
)

// CoderPrompt is appended to every request the coder sends.
const CoderPrompt = "You are a Python developer participating in a brainstorming session with other AI agents and a user. " +
	"Respond appropriately to messages from both agents and the user. " +
	"Provide code within ```python``` code blocks when relevant."

const (
	generatePrompt = "You are a Python developer that generates Python code for the idea."
	detectPrompt   = "You are a developer that detects the language of the code."
	fixPrompt      = "You are a Python developer that fixes code errors."
)

// Outcome messages reported by Process and HandleGenerated.
const (
	MsgExecuted  = "Code executed successfully."
	MsgErrors    = "Errors detected in the code."
	MsgNotPython = "The provided code is not in Python."
	MsgNoBlocks  = "No Python code blocks found in the generated text."
)

// Executor runs a snippet and reports how it went.
type Executor interface {
	Run(ctx context.Context, code string) sandbox.Result
}

// Outcome is the structured result of processing one code block.
type Outcome struct {
	Status  sandbox.Status `json:"status"`
	Message string         `json:"message"`
	Details string         `json:"details,omitempty"`
	Code    string         `json:"code,omitempty"`
}

// OK reports whether the block ran cleanly.
func (o Outcome) OK() bool {
	return o.Status == sandbox.StatusSuccess
}

// Coder writes Python, and can check and repair what it wrote. Execution
// failures are reported, never retried; RequestFix is an explicit step.
type Coder struct {
	*Base
	exec Executor
}

// NewCoder creates a coder. instruction replaces CoderPrompt when non-empty.
func NewCoder(name string, client llm.Client, exec Executor, instruction string) *Coder {
	if instruction == "" {
		instruction = CoderPrompt
	}
	return &Coder{
		Base: newBase(name, KindCoder, client, appendSystem(instruction)),
		exec: exec,
	}
}

// ExtractCode returns the fenced python blocks in text.
func (c *Coder) ExtractCode(text string) []string {
	return artifact.ExtractPython(text)
}

// DetectLanguage asks the model which language code is written in.
func (c *Coder) DetectLanguage(ctx context.Context, code string) (string, error) {
	return c.Complete(ctx, []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, detectPrompt),
		protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("Detect the language of the code: %s.", code)),
	})
}

// Execute runs code in the sandbox.
func (c *Coder) Execute(ctx context.Context, code string) sandbox.Result {
	return c.exec.Run(ctx, code)
}

// Process detects the language of code and, when it is Python, executes it.
// Only a failed language detection returns an error.
func (c *Coder) Process(ctx context.Context, code string) (Outcome, error) {
	language, err := c.DetectLanguage(ctx, code)
	if err != nil {
		return Outcome{}, fmt.Errorf("language detection failed: %w", err)
	}

	if !strings.Contains(strings.ToLower(language), artifact.LanguagePython) {
		return Outcome{Status: sandbox.StatusError, Message: MsgNotPython, Code: code}, nil
	}

	res := c.Execute(ctx, code)
	if !res.OK() {
		return Outcome{Status: sandbox.StatusError, Message: MsgErrors, Details: res.Output, Code: code}, nil
	}
	return Outcome{Status: sandbox.StatusSuccess, Message: MsgExecuted, Details: res.Output, Code: code}, nil
}

// HandleGenerated processes every python block in text, in order. Text
// without blocks yields a single error outcome.
func (c *Coder) HandleGenerated(ctx context.Context, text string) ([]Outcome, error) {
	blocks := c.ExtractCode(text)
	if len(blocks) == 0 {
		return []Outcome{{Status: sandbox.StatusError, Message: MsgNoBlocks}}, nil
	}

	outcomes := make([]Outcome, 0, len(blocks))
	for _, code := range blocks {
		outcome, err := c.Process(ctx, code)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// RequestFix asks for a corrected version of code that produced errorDetails.
func (c *Coder) RequestFix(ctx context.Context, errorDetails string) (string, error) {
	return c.Complete(ctx, []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, fixPrompt),
		protocol.NewMessage(protocol.RoleUser, "Fix the following code errors and provide a corrected version in Python:\n"+errorDetails),
	})
}

// GenerateCode asks for Python code implementing idea.
func (c *Coder) GenerateCode(ctx context.Context, idea string) (string, error) {
	return c.Complete(ctx, []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, generatePrompt),
		protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("Generate Python code for the idea: %s.", idea)),
	})
}
