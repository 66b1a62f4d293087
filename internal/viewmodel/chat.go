package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// ChatUseCases are the actions behind ChatViewModel
type ChatUseCases struct {
	ChatWithAI  *usecase.ChatWithAI
	GetAIStatus *usecase.GetAIStatus
}

// ChatViewModel holds the conversation in chronological order and the assistant status
type ChatViewModel struct {
	Messages *Store[[]model.AIChatMessage]
	Status   *Store[*model.AIStatus]
	uc       ChatUseCases
	logger   *zap.Logger
}

// NewChatViewModel creates a new ChatViewModel
func NewChatViewModel(uc ChatUseCases, logger *zap.Logger) *ChatViewModel {
	return &ChatViewModel{
		Messages: NewStore[[]model.AIChatMessage](nil),
		Status:   NewStore[*model.AIStatus](nil),
		uc:       uc,
		logger:   logger,
	}
}

// Send asks the assistant and appends the exchange
func (vm *ChatViewModel) Send(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error) {
	return mutate(vm.Messages, func() (*model.AIChatMessage, error) {
		return vm.uc.ChatWithAI.Execute(ctx, req)
	}, func(cur []model.AIChatMessage, msg *model.AIChatMessage) []model.AIChatMessage {
		return appendCopy(cur, *msg)
	})
}

// LoadStatus checks whether the assistant is available
func (vm *ChatViewModel) LoadStatus(ctx context.Context) (*model.AIStatus, error) {
	return load(vm.Status, func() (*model.AIStatus, error) {
		return vm.uc.GetAIStatus.Execute(ctx)
	})
}

// Clear drops the conversation
func (vm *ChatViewModel) Clear() {
	vm.Messages.reset(nil)
}
