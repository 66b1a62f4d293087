package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

const completionJSON = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1714557600,
	"model": "gpt-4o",
	"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Aim for 7-9 hours of sleep."}}],
	"usage": {"prompt_tokens": 42, "completion_tokens": 9, "total_tokens": 51}
}`

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		apiKey     string
		deployment string
		wantErr    bool
	}{
		{name: "valid configuration", endpoint: "https://test.openai.azure.com/", apiKey: "test-key", deployment: "gpt-4o"},
		{name: "missing endpoint", apiKey: "test-key", deployment: "gpt-4o", wantErr: true},
		{name: "missing api key", endpoint: "https://test.openai.azure.com/", deployment: "gpt-4o", wantErr: true},
		{name: "missing deployment", endpoint: "https://test.openai.azure.com/", apiKey: "test-key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.endpoint, tt.apiKey, tt.deployment, zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.deployment, client.deployment)
		})
	}
}

func TestClient_Chat(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	maxTokens := 200
	temperature := 0.3
	msg, err := client.Chat(context.Background(), &model.ChatRequest{
		Prompt:      "How much should I sleep?",
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	require.NoError(t, err)

	assert.Equal(t, "chatcmpl-1", msg.ID)
	assert.Equal(t, "How much should I sleep?", msg.Prompt)
	assert.Equal(t, "Aim for 7-9 hours of sleep.", msg.Response)
	assert.Equal(t, "gpt-4o", msg.Model)
	assert.Equal(t, int64(51), msg.Usage.TotalTokens)
	assert.Equal(t, int64(1714557600), msg.CreatedAt.Unix())

	assert.EqualValues(t, 200, received["max_tokens"])
	assert.InDelta(t, 0.3, received["temperature"], 1e-9)
	messages, ok := received["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestClient_ChatDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), &model.ChatRequest{Prompt: "hi"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), &model.ChatRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestClient_Status(t *testing.T) {
	client, err := NewClient("https://test.openai.azure.com/", "k", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Available)
	assert.Equal(t, ProviderName, status.Provider)
}
