package stubapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

const stubModel = "stub-echo"

func (s *Server) chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "body", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		unprocessable(c, "prompt", "Prompt must not be empty")
		return
	}

	if s.assistant != nil {
		msg, err := s.assistant.Chat(c.Request.Context(), &req)
		if err != nil {
			c.Error(err)
			detail(c, http.StatusServiceUnavailable, "AI service unavailable")
			return
		}
		c.JSON(http.StatusOK, msg)
		return
	}

	response := fmt.Sprintf("You asked: %q. Keep logging your health data and talk to a professional about anything that worries you.", req.Prompt)
	promptTokens := int64(len(strings.Fields(req.Prompt)))
	completionTokens := int64(len(strings.Fields(response)))

	s.logger.Info("stub chat answered",
		zap.String("user_id", c.GetString("user_id")),
		zap.Int64("prompt_tokens", promptTokens),
	)

	c.JSON(http.StatusOK, model.AIChatMessage{
		ID:       ksuid.New().String(),
		Prompt:   req.Prompt,
		Response: response,
		Model:    stubModel,
		Usage: model.TokenUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
		CreatedAt: s.now().UTC(),
	})
}

func (s *Server) status(c *gin.Context) {
	if s.assistant != nil {
		st, err := s.assistant.Status(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusOK, model.AIStatus{Available: false})
			return
		}
		c.JSON(http.StatusOK, st)
		return
	}

	c.JSON(http.StatusOK, model.AIStatus{
		Available: true,
		Model:     stubModel,
		Provider:  "stub",
	})
}
