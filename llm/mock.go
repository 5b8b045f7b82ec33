package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// MockModel is an offline llms.Model. With scripted responses it returns them
// in order and repeats the last one once exhausted; without any it answers
// with a fixed sentence naming the model.
type MockModel struct {
	model     string
	responses []string

	mu    sync.Mutex
	calls int
	seen  [][]llms.MessageContent
}

// NewMockModel creates a MockModel that replays responses.
func NewMockModel(model string, responses ...string) *MockModel {
	return &MockModel{model: model, responses: responses}
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen = append(m.seen, messages)
	text := m.next()
	m.calls++

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, nil
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Calls returns how many completions have been served.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requests returns the message lists received so far, in call order.
func (m *MockModel) Requests() [][]llms.MessageContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]llms.MessageContent, len(m.seen))
	copy(out, m.seen)
	return out
}

func (m *MockModel) next() string {
	if len(m.responses) == 0 {
		name := strings.TrimSpace(m.model)
		if name == "" {
			name = "mock"
		}
		return fmt.Sprintf("Mock response from %s.", name)
	}
	if m.calls < len(m.responses) {
		return m.responses[m.calls]
	}
	return m.responses[len(m.responses)-1]
}
