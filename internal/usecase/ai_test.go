package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/mocks"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func TestChatWithAI_Validation(t *testing.T) {
	tests := []struct {
		name          string
		req           *model.ChatRequest
		expectedField string
	}{
		{name: "empty prompt", req: &model.ChatRequest{Prompt: ""}, expectedField: "prompt"},
		{name: "whitespace prompt", req: &model.ChatRequest{Prompt: " \n\t "}, expectedField: "prompt"},
		{name: "prompt too long", req: &model.ChatRequest{Prompt: strings.Repeat("a", 2001)}, expectedField: "prompt"},
		{name: "zero max tokens", req: &model.ChatRequest{Prompt: "hi", MaxTokens: intPtr(0)}, expectedField: "max_tokens"},
		{name: "max tokens too high", req: &model.ChatRequest{Prompt: "hi", MaxTokens: intPtr(4001)}, expectedField: "max_tokens"},
		{name: "negative temperature", req: &model.ChatRequest{Prompt: "hi", Temperature: floatPtr(-0.1)}, expectedField: "temperature"},
		{name: "temperature too high", req: &model.ChatRequest{Prompt: "hi", Temperature: floatPtr(2.1)}, expectedField: "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := new(mocks.MockAIService)
			_, err := NewChatWithAI(ai, zap.NewNop()).Execute(context.Background(), tt.req)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedField, vErr.Field)
			ai.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
		})
	}
}

func TestChatWithAI_BoundaryValuesAccepted(t *testing.T) {
	req := &model.ChatRequest{Prompt: strings.Repeat("é", 2000), MaxTokens: intPtr(4000), Temperature: floatPtr(2)}
	reply := &model.AIChatMessage{ID: "1", Prompt: req.Prompt, Response: "ok"}

	ai := new(mocks.MockAIService)
	ai.On("Chat", mock.Anything, req).Return(reply, nil)

	got, err := NewChatWithAI(ai, zap.NewNop()).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, reply, got)
}

func TestGetAIStatus_Delegates(t *testing.T) {
	ai := new(mocks.MockAIService)
	ai.On("Status", mock.Anything).Return(&model.AIStatus{Available: false}, nil)

	status, err := NewGetAIStatus(ai, zap.NewNop()).Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Available)
}
