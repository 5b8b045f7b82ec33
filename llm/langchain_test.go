package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/llm"
	"github.com/tmc/langchaingo/llms"
)

type failingModel struct {
	err error
}

func (m failingModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return nil, m.err
}

func (m failingModel) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return "", m.err
}

type emptyModel struct{}

func (emptyModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (emptyModel) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return "", nil
}

func hi() []protocol.Message {
	return []protocol.Message{protocol.NewMessage(protocol.RoleUser, "hi")}
}

func TestLangChainClient_Complete(t *testing.T) {
	model := llm.NewMockModel("test", "first", "second")
	client := llm.NewLangChainClient(model)

	messages := []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, "be brief"),
		protocol.NewMessage(protocol.RoleUser, "hello"),
		protocol.NewMessage(protocol.RoleAssistant, "hi"),
	}

	got, err := client.Complete(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = client.Complete(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = client.Complete(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "second", got, "exhausted script repeats the last response")

	requests := model.Requests()
	require.Len(t, requests, 3)
	sent := requests[0]
	require.Len(t, sent, 3)
	assert.Equal(t, llms.ChatMessageTypeSystem, sent[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, sent[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, sent[2].Role)
	assert.Equal(t, llms.TextContent{Text: "hello"}, sent[1].Parts[0])
}

func TestLangChainClient_Complete_Errors(t *testing.T) {
	backendErr := errors.New("401 unauthorized")

	t.Run("backend failure propagates", func(t *testing.T) {
		client := llm.NewLangChainClient(failingModel{err: backendErr})
		_, err := client.Complete(context.Background(), hi())
		require.Error(t, err)
		assert.ErrorIs(t, err, backendErr)
	})

	t.Run("empty choices", func(t *testing.T) {
		client := llm.NewLangChainClient(emptyModel{})
		_, err := client.Complete(context.Background(), hi())
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})

	t.Run("no messages", func(t *testing.T) {
		client := llm.NewLangChainClient(llm.NewMockModel("test"))
		_, err := client.Complete(context.Background(), nil)
		assert.ErrorIs(t, err, llm.ErrNoMessages)
	})
}

func TestMockModel_Default(t *testing.T) {
	client := llm.NewLangChainClient(llm.NewMockModel("gpt-test"))

	got, err := client.Complete(context.Background(), hi())
	require.NoError(t, err)
	assert.Equal(t, "Mock response from gpt-test.", got)
	assert.NotContains(t, got, "yes")
}

func TestMockModel_Cancelled(t *testing.T) {
	model := llm.NewMockModel("test", "never")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := llm.NewLangChainClient(model).Complete(ctx, hi())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, model.Calls())
}

func TestNew_Providers(t *testing.T) {
	t.Run("mock", func(t *testing.T) {
		cfg := llm.Config{Provider: llm.ProviderMock, Model: "m"}
		client, err := llm.New(&cfg)
		require.NoError(t, err)

		got, err := client.Complete(context.Background(), hi())
		require.NoError(t, err)
		assert.Equal(t, "Mock response from m.", got)
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := llm.Config{Provider: "carrier-pigeon"}
		_, err := llm.New(&cfg)
		assert.ErrorIs(t, err, llm.ErrUnsupportedProvider)
	})

	t.Run("anthropic rejects organization", func(t *testing.T) {
		cfg := llm.Config{Provider: llm.ProviderAnthropic, Model: "claude", Organization: "org"}
		_, err := llm.New(&cfg)
		assert.Error(t, err)
	})
}

func TestClientFunc(t *testing.T) {
	var got []protocol.Message
	client := llm.ClientFunc(func(_ context.Context, messages []protocol.Message) (string, error) {
		got = messages
		return "ok", nil
	})

	out, err := client.Complete(context.Background(), hi())
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, got, 1)
}

func TestDefaultConfig(t *testing.T) {
	cfg := llm.DefaultConfig()
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)

	coder := cfg.WithModel("gpt-4")
	assert.Equal(t, "gpt-4", coder.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.Model, "WithModel must not modify the receiver")
	assert.Equal(t, "gpt-4o-mini", cfg.WithModel("").Model)
}
