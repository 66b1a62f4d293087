package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

const (
	MaxPromptLength = 2000
	MaxChatTokens   = 4000
	MaxTemperature  = 2.0
)

// ChatWithAI sends a prompt to the assistant
type ChatWithAI struct {
	ai     AIService
	logger *zap.Logger
}

// NewChatWithAI creates a new ChatWithAI use-case
func NewChatWithAI(ai AIService, logger *zap.Logger) *ChatWithAI {
	return &ChatWithAI{ai: ai, logger: logger}
}

// Execute validates the prompt and options, then forwards the request unchanged
func (uc *ChatWithAI) Execute(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error) {
	if req == nil {
		return nil, required("prompt", "prompt")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, required("prompt", "prompt")
	}
	if utf8.RuneCountInString(req.Prompt) > MaxPromptLength {
		return nil, invalid("prompt", "prompt must be at most %d characters", MaxPromptLength)
	}
	if req.MaxTokens != nil {
		if err := checkIntRange("max_tokens", "max tokens", *req.MaxTokens, 1, MaxChatTokens); err != nil {
			return nil, err
		}
	}
	if req.Temperature != nil {
		if err := checkRange("temperature", "temperature", *req.Temperature, 0, MaxTemperature); err != nil {
			return nil, err
		}
	}

	msg, err := uc.ai.Chat(ctx, req)
	if err != nil {
		uc.logger.Warn("chat request failed", zap.Error(err))
		return nil, err
	}
	if msg != nil {
		uc.logger.Debug("chat answered",
			zap.String("model", msg.Model),
			zap.Int64("total_tokens", msg.Usage.TotalTokens),
		)
	}
	return msg, nil
}

// GetAIStatus reports assistant availability
type GetAIStatus struct {
	ai     AIService
	logger *zap.Logger
}

// NewGetAIStatus creates a new GetAIStatus use-case
func NewGetAIStatus(ai AIService, logger *zap.Logger) *GetAIStatus {
	return &GetAIStatus{ai: ai, logger: logger}
}

// Execute fetches the status
func (uc *GetAIStatus) Execute(ctx context.Context) (*model.AIStatus, error) {
	status, err := uc.ai.Status(ctx)
	if err != nil {
		uc.logger.Warn("failed to fetch assistant status", zap.Error(err))
		return nil, err
	}
	if status != nil && !status.Available {
		uc.logger.Info("assistant unavailable", zap.String("provider", status.Provider))
	}
	return status, nil
}
