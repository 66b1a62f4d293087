package repository

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// AIRepository talks to the backend assistant endpoints
type AIRepository struct {
	client    *apiclient.Client
	validator *schema.Validator
	logger    *zap.Logger
}

// NewAIRepository creates a new AIRepository
func NewAIRepository(client *apiclient.Client, validator *schema.Validator, logger *zap.Logger) *AIRepository {
	return &AIRepository{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// Chat sends one prompt and returns the exchange
func (r *AIRepository) Chat(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error) {
	body, err := r.client.Post(ctx, "/ai/chat", req)
	if err != nil {
		return nil, err
	}

	var msg model.AIChatMessage
	if err := decodeResponse(r.validator, r.logger, "/ai/chat", schema.AIChatMessage, body, &msg); err != nil {
		return nil, err
	}

	r.logger.Debug("chat completed",
		zap.String("model", msg.Model),
		zap.Int64("total_tokens", msg.Usage.TotalTokens),
	)

	return &msg, nil
}

// Status reports whether the backend assistant is available
func (r *AIRepository) Status(ctx context.Context) (*model.AIStatus, error) {
	body, err := r.client.Get(ctx, "/ai/status", nil)
	if err != nil {
		return nil, err
	}

	var status model.AIStatus
	if err := decodeResponse(r.validator, r.logger, "/ai/status", schema.AIStatus, body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
