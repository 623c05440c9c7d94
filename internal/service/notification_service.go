package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

type NotificationService interface {
	NotifyNewAdoptionRequest(ctx context.Context, sellerID uuid.UUID, requesterName, petName string, requestID uuid.UUID) error
	NotifyRequestApproved(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error
	NotifyRequestRejected(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error
	NotifyNewChatMessage(ctx context.Context, recipientID uuid.UUID, senderName string, chatID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) NotifyNewAdoptionRequest(ctx context.Context, sellerID uuid.UUID, requesterName, petName string, requestID uuid.UUID) error {
	return s.create(ctx, sellerID, domain.NotifNewAdoptionRequest,
		"New adoption request",
		fmt.Sprintf("%s wants to adopt %s", requesterName, petName),
		map[string]string{"request_id": requestID.String()})
}

func (s *notificationService) NotifyRequestApproved(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error {
	return s.create(ctx, requesterID, domain.NotifRequestApproved,
		"Adoption approved",
		fmt.Sprintf("Your adoption of %s was approved", petName),
		map[string]string{"request_id": requestID.String()})
}

func (s *notificationService) NotifyRequestRejected(ctx context.Context, requesterID uuid.UUID, petName string, requestID uuid.UUID) error {
	return s.create(ctx, requesterID, domain.NotifRequestRejected,
		"Adoption request declined",
		fmt.Sprintf("Your request for %s was declined by the seller", petName),
		map[string]string{"request_id": requestID.String()})
}

func (s *notificationService) NotifyNewChatMessage(ctx context.Context, recipientID uuid.UUID, senderName string, chatID uuid.UUID) error {
	return s.create(ctx, recipientID, domain.NotifNewChatMessage,
		"New message",
		fmt.Sprintf("%s sent you a message", senderName),
		map[string]string{"chat_id": chatID.String()})
}

func (s *notificationService) create(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, title, message string, data map[string]string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    types.JSONText(payload),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}
