package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
)

type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *ChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *ChatRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.Chat, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *ChatRepository) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *ChatRepository) SetAccepted(ctx context.Context, chatID uuid.UUID, buyer bool) (*domain.Chat, error) {
	args := m.Called(ctx, chatID, buyer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}
