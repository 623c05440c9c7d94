package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyNewAdoptionRequest(ctx context.Context, sellerID uuid.UUID, requesterName, petName string, requestID uuid.UUID) error {
	args := m.Called(ctx, sellerID, requesterName, petName, requestID)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequestApproved(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error {
	args := m.Called(ctx, requesterID, petName, requestID)
	return args.Error(0)
}

func (m *NotificationService) NotifyRequestRejected(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error {
	args := m.Called(ctx, requesterID, petName, requestID)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewChatMessage(ctx context.Context, recipientID uuid.UUID, senderName string, chatID uuid.UUID) error {
	args := m.Called(ctx, recipientID, senderName, chatID)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
