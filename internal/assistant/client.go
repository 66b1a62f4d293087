// Package assistant talks to Azure OpenAI directly, as an alternative to the
// backend's /ai endpoints.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// ProviderName is reported in AIStatus
const ProviderName = "azure-openai"

const apiVersion = "2024-08-01-preview"

const systemPrompt = "You are Eva, a friendly health assistant. Give short, practical, evidence-based " +
	"wellness guidance. You do not diagnose; suggest seeing a clinician for anything urgent or persistent."

// Client implements the chat port on top of the openai-go SDK with Azure extensions
type Client struct {
	client     *openai.Client
	deployment string
	logger     *zap.Logger
}

// NewClient creates an Azure OpenAI chat client. Requests are never retried.
func NewClient(endpoint, apiKey, deployment string, logger *zap.Logger, opts ...option.RequestOption) (*Client, error) {
	if endpoint == "" || apiKey == "" || deployment == "" {
		return nil, fmt.Errorf("endpoint, apiKey, and deployment are required")
	}

	opts = append([]option.RequestOption{
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	client := openai.NewClient(opts...)

	return &Client{
		client:     &client,
		deployment: deployment,
		logger:     logger,
	}, nil
}

// Chat sends one prompt and returns the exchange
func (c *Client) Chat(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	startTime := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error("Azure OpenAI request failed", zap.Error(err), zap.String("deployment", c.deployment))
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from Azure OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty content in response")
	}

	c.logger.Info("Azure OpenAI token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("request_time", time.Since(startTime)),
	)

	createdAt := time.Now().UTC()
	if resp.Created > 0 {
		createdAt = time.Unix(resp.Created, 0).UTC()
	}

	modelName := resp.Model
	if modelName == "" {
		modelName = c.deployment
	}

	return &model.AIChatMessage{
		ID:       resp.ID,
		Prompt:   req.Prompt,
		Response: content,
		Model:    modelName,
		Usage: model.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		CreatedAt: createdAt,
	}, nil
}

// Status reports the configured deployment; a constructed client is considered available
func (c *Client) Status(ctx context.Context) (*model.AIStatus, error) {
	return &model.AIStatus{
		Available: true,
		Model:     c.deployment,
		Provider:  ProviderName,
	}, nil
}
