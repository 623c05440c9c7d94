package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/realtime"
	"pawmarket/internal/repository"
)

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrNotChatParty    = errors.New("only the buyer or the seller may access this chat")
	ErrChatConflict    = repository.ErrChatExists
	ErrEmptyMessage    = errors.New("message content is required")
	ErrChatRequestGone = errors.New("adoption request is no longer pending")
)

// AcceptResult tells the caller what the acceptance changed.
type AcceptResult struct {
	Chat     *domain.Chat `json:"chat"`
	Approved bool         `json:"approved"`
}

type ChatService interface {
	OpenChat(ctx context.Context, callerID, requestID uuid.UUID) (*domain.Chat, error)
	GetByRequestID(ctx context.Context, callerID, requestID uuid.UUID) (*domain.Chat, error)
	SendMessage(ctx context.Context, caller *domain.User, chatID uuid.UUID, input domain.SendMessageInput) (*domain.ChatMessage, error)
	Accept(ctx context.Context, callerID, chatID uuid.UUID) (*AcceptResult, error)
}

type chatService struct {
	chatRepo     repository.ChatRepository
	adoptionRepo repository.AdoptionRequestRepository
	petRepo      repository.PetRepository
	userRepo     repository.UserRepository
	notifService NotificationService
	emailService EmailService
	hub          *realtime.Hub
}

func NewChatService(
	chatRepo repository.ChatRepository,
	adoptionRepo repository.AdoptionRequestRepository,
	petRepo repository.PetRepository,
	userRepo repository.UserRepository,
	notifService NotificationService,
	emailService EmailService,
	hub *realtime.Hub,
) ChatService {
	return &chatService{
		chatRepo:     chatRepo,
		adoptionRepo: adoptionRepo,
		petRepo:      petRepo,
		userRepo:     userRepo,
		notifService: notifService,
		emailService: emailService,
		hub:          hub,
	}
}

// OpenChat creates the single chat bound to a pending adoption request.
// Either party may open it; the buyer is always the requester and the seller
// the pet's owner.
func (s *chatService) OpenChat(ctx context.Context, callerID, requestID uuid.UUID) (*domain.Chat, error) {
	req, err := s.adoptionRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if callerID != req.RequesterID && callerID != req.SellerID {
		return nil, ErrNotChatParty
	}
	if req.Status != domain.RequestPending {
		return nil, ErrChatRequestGone
	}

	chat := &domain.Chat{
		ID:                uuid.New(),
		AdoptionRequestID: req.ID,
		BuyerID:           req.RequesterID,
		SellerID:          req.SellerID,
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) GetByRequestID(ctx context.Context, callerID, requestID uuid.UUID) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.IsParty(callerID) {
		return nil, ErrNotChatParty
	}

	messages, err := s.chatRepo.ListMessages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	chat.Messages = messages
	return chat, nil
}

func (s *chatService) SendMessage(ctx context.Context, caller *domain.User, chatID uuid.UUID, input domain.SendMessageInput) (*domain.ChatMessage, error) {
	if input.Content == "" {
		return nil, ErrEmptyMessage
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.IsParty(caller.ID) {
		return nil, ErrNotChatParty
	}

	msg := &domain.ChatMessage{
		ID:       uuid.New(),
		ChatID:   chat.ID,
		SenderID: caller.ID,
		Content:  input.Content,
	}
	if err := s.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipient := chat.SellerID
	if caller.ID == chat.SellerID {
		recipient = chat.BuyerID
	}

	s.hub.Push(recipient, realtime.Event{Type: realtime.EventChatMessage, Payload: msg})

	if !s.hub.Online(recipient) {
		if err := s.notifService.NotifyNewChatMessage(ctx, recipient, caller.DisplayName(), chat.ID); err != nil {
			log.Printf("Failed to create chat notification: %v", err)
		}
	}

	return msg, nil
}

// Accept records the caller's acceptance. Re-accepting is a no-op. The moment
// both flags are true the linked request is approved and the pet adopted, as
// one transaction that fires exactly once however many accepts race in.
func (s *chatService) Accept(ctx context.Context, callerID, chatID uuid.UUID) (*AcceptResult, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.IsParty(callerID) {
		return nil, ErrNotChatParty
	}

	updated, err := s.chatRepo.SetAccepted(ctx, chat.ID, callerID == chat.BuyerID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrChatNotFound
	}

	result := &AcceptResult{Chat: updated}
	if !updated.BothAccepted() {
		s.hub.Push(s.counterparty(updated, callerID), realtime.Event{Type: realtime.EventChatAccepted, Payload: updated})
		return result, nil
	}

	req, err := s.adoptionRepo.GetByID(ctx, updated.AdoptionRequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	approved, err := s.adoptionRepo.ApproveAndAdopt(ctx, req.ID, req.PetID, updated.BuyerID)
	if err != nil {
		return nil, err
	}
	result.Approved = approved

	if approved {
		s.onApproved(ctx, updated, req)
	}
	return result, nil
}

func (s *chatService) counterparty(chat *domain.Chat, userID uuid.UUID) uuid.UUID {
	if userID == chat.BuyerID {
		return chat.SellerID
	}
	return chat.BuyerID
}

func (s *chatService) onApproved(ctx context.Context, chat *domain.Chat, req *domain.AdoptionRequest) {
	petName := "the pet"
	if pet, err := s.petRepo.GetByID(ctx, req.PetID); err == nil && pet != nil {
		petName = pet.Name
	}

	if err := s.notifService.NotifyRequestApproved(ctx, chat.BuyerID, petName, chat.AdoptionRequestID); err != nil {
		log.Printf("Failed to create approval notification: %v", err)
	}

	for _, party := range []uuid.UUID{chat.BuyerID, chat.SellerID} {
		s.hub.Push(party, realtime.Event{Type: realtime.EventAdoptionDecided, Payload: chat})
	}

	buyer, err := s.userRepo.GetByID(ctx, chat.BuyerID)
	if err != nil || buyer == nil {
		return
	}
	go func(email, name, pet string) {
		if err := s.emailService.SendAdoptionApprovedEmail(context.Background(), email, name, pet); err != nil {
			log.Printf("Failed to send approval email: %v", err)
		}
	}(buyer.Email, buyer.DisplayName(), petName)
}
