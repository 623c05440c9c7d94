package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
	"pawmarket/internal/realtime"
	"pawmarket/internal/service"
	"pawmarket/tests/mocks"
)

type chatFixture struct {
	chatRepo     *mocks.ChatRepository
	adoptionRepo *mocks.AdoptionRequestRepository
	petRepo      *mocks.PetRepository
	userRepo     *mocks.UserRepository
	notif        *mocks.NotificationService
	email        *mocks.EmailService
	svc          service.ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		chatRepo:     new(mocks.ChatRepository),
		adoptionRepo: new(mocks.AdoptionRequestRepository),
		petRepo:      new(mocks.PetRepository),
		userRepo:     new(mocks.UserRepository),
		notif:        new(mocks.NotificationService),
		email:        new(mocks.EmailService),
	}
	f.svc = service.NewChatService(f.chatRepo, f.adoptionRepo, f.petRepo, f.userRepo, f.notif, f.email, realtime.NewHub())
	return f
}

func TestChatService_OpenChat(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	sellerID := uuid.New()
	request := &domain.AdoptionRequest{
		ID:          uuid.New(),
		PetID:       uuid.New(),
		RequesterID: buyerID,
		SellerID:    sellerID,
		Status:      domain.RequestPending,
	}

	t.Run("Buyer opens", func(t *testing.T) {
		f := newChatFixture()
		f.adoptionRepo.On("GetByID", ctx, request.ID).Return(request, nil).Once()
		f.chatRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Chat) bool {
			return c.AdoptionRequestID == request.ID && c.BuyerID == buyerID && c.SellerID == sellerID
		})).Return(nil).Once()

		chat, err := f.svc.OpenChat(ctx, buyerID, request.ID)

		assert.NoError(t, err)
		assert.Equal(t, buyerID, chat.BuyerID)
		f.chatRepo.AssertExpectations(t)
	})

	t.Run("Outsider denied", func(t *testing.T) {
		f := newChatFixture()
		f.adoptionRepo.On("GetByID", ctx, request.ID).Return(request, nil).Once()

		_, err := f.svc.OpenChat(ctx, uuid.New(), request.ID)

		assert.ErrorIs(t, err, service.ErrNotChatParty)
		f.chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Settled request", func(t *testing.T) {
		f := newChatFixture()
		settled := &domain.AdoptionRequest{
			ID:          uuid.New(),
			RequesterID: buyerID,
			SellerID:    sellerID,
			Status:      domain.RequestRejected,
		}
		f.adoptionRepo.On("GetByID", ctx, settled.ID).Return(settled, nil).Once()

		_, err := f.svc.OpenChat(ctx, buyerID, settled.ID)

		assert.ErrorIs(t, err, service.ErrChatRequestGone)
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()
	firstName := "Jane"
	buyer := &domain.User{ID: uuid.New(), Email: "jane@example.com", Role: "regular", FirstName: &firstName}
	chat := &domain.Chat{
		ID:                uuid.New(),
		AdoptionRequestID: uuid.New(),
		BuyerID:           buyer.ID,
		SellerID:          uuid.New(),
	}

	t.Run("Offline recipient gets a notification", func(t *testing.T) {
		f := newChatFixture()
		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()
		f.chatRepo.On("AppendMessage", ctx, mock.MatchedBy(func(m *domain.ChatMessage) bool {
			return m.ChatID == chat.ID && m.SenderID == buyer.ID && m.Content == "hello"
		})).Return(nil).Once()
		f.notif.On("NotifyNewChatMessage", ctx, chat.SellerID, "Jane", chat.ID).Return(nil).Once()

		msg, err := f.svc.SendMessage(ctx, buyer, chat.ID, domain.SendMessageInput{Content: "hello"})

		assert.NoError(t, err)
		assert.Equal(t, "hello", msg.Content)
		f.notif.AssertExpectations(t)
	})

	t.Run("Empty content", func(t *testing.T) {
		f := newChatFixture()

		_, err := f.svc.SendMessage(ctx, buyer, chat.ID, domain.SendMessageInput{})

		assert.ErrorIs(t, err, service.ErrEmptyMessage)
	})

	t.Run("Outsider denied", func(t *testing.T) {
		f := newChatFixture()
		outsider := &domain.User{ID: uuid.New(), Email: "mallory@example.com", Role: "regular"}
		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()

		_, err := f.svc.SendMessage(ctx, outsider, chat.ID, domain.SendMessageInput{Content: "hi"})

		assert.ErrorIs(t, err, service.ErrNotChatParty)
	})
}

func TestChatService_Accept(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	sellerID := uuid.New()
	petID := uuid.New()
	requestID := uuid.New()
	chat := &domain.Chat{
		ID:                uuid.New(),
		AdoptionRequestID: requestID,
		BuyerID:           buyerID,
		SellerID:          sellerID,
	}
	request := &domain.AdoptionRequest{
		ID:          requestID,
		PetID:       petID,
		RequesterID: buyerID,
		SellerID:    sellerID,
		Status:      domain.RequestPending,
	}

	t.Run("First accept does not approve", func(t *testing.T) {
		f := newChatFixture()
		after := &domain.Chat{ID: chat.ID, AdoptionRequestID: requestID, BuyerID: buyerID, SellerID: sellerID, BuyerAccepted: true}
		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()
		f.chatRepo.On("SetAccepted", ctx, chat.ID, true).Return(after, nil).Once()

		result, err := f.svc.Accept(ctx, buyerID, chat.ID)

		assert.NoError(t, err)
		assert.False(t, result.Approved)
		f.adoptionRepo.AssertNotCalled(t, "ApproveAndAdopt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second accept approves exactly once", func(t *testing.T) {
		f := newChatFixture()
		both := &domain.Chat{ID: chat.ID, AdoptionRequestID: requestID, BuyerID: buyerID, SellerID: sellerID, BuyerAccepted: true, SellerAccepted: true}
		buyer := &domain.User{ID: buyerID, Email: "jane@example.com", Role: "regular"}
		pet := &domain.Pet{ID: petID, SellerID: sellerID, Name: "Rex", Status: "available"}

		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()
		f.chatRepo.On("SetAccepted", ctx, chat.ID, false).Return(both, nil).Once()
		f.adoptionRepo.On("GetByID", ctx, requestID).Return(request, nil).Once()
		f.adoptionRepo.On("ApproveAndAdopt", ctx, requestID, petID, buyerID).Return(true, nil).Once()
		f.petRepo.On("GetByID", ctx, petID).Return(pet, nil).Once()
		f.notif.On("NotifyRequestApproved", ctx, buyerID, "Rex", requestID).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, buyerID).Return(buyer, nil).Once()
		f.email.On("SendAdoptionApprovedEmail", mock.Anything, buyer.Email, mock.Anything, "Rex").Return(nil).Maybe()

		result, err := f.svc.Accept(ctx, sellerID, chat.ID)

		assert.NoError(t, err)
		assert.True(t, result.Approved)
		f.adoptionRepo.AssertNumberOfCalls(t, "ApproveAndAdopt", 1)
	})

	t.Run("Race loser sees no second approval", func(t *testing.T) {
		f := newChatFixture()
		both := &domain.Chat{ID: chat.ID, AdoptionRequestID: requestID, BuyerID: buyerID, SellerID: sellerID, BuyerAccepted: true, SellerAccepted: true}

		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()
		f.chatRepo.On("SetAccepted", ctx, chat.ID, false).Return(both, nil).Once()
		f.adoptionRepo.On("GetByID", ctx, requestID).Return(request, nil).Once()
		f.adoptionRepo.On("ApproveAndAdopt", ctx, requestID, petID, buyerID).Return(false, nil).Once()

		result, err := f.svc.Accept(ctx, sellerID, chat.ID)

		assert.NoError(t, err)
		assert.False(t, result.Approved)
		f.notif.AssertNotCalled(t, "NotifyRequestApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Outsider denied", func(t *testing.T) {
		f := newChatFixture()
		f.chatRepo.On("GetByID", ctx, chat.ID).Return(chat, nil).Once()

		_, err := f.svc.Accept(ctx, uuid.New(), chat.ID)

		assert.ErrorIs(t, err, service.ErrNotChatParty)
		f.chatRepo.AssertNotCalled(t, "SetAccepted", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChatService_GetByRequestID(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	sellerID := uuid.New()
	requestID := uuid.New()
	chat := &domain.Chat{
		ID:                uuid.New(),
		AdoptionRequestID: requestID,
		BuyerID:           buyerID,
		SellerID:          sellerID,
	}

	t.Run("Messages keep arrival order for interleaved senders", func(t *testing.T) {
		messages := []domain.ChatMessage{
			{ID: uuid.New(), Seq: 1, ChatID: chat.ID, SenderID: buyerID, Content: "is Rex still available?"},
			{ID: uuid.New(), Seq: 2, ChatID: chat.ID, SenderID: sellerID, Content: "he is"},
			{ID: uuid.New(), Seq: 3, ChatID: chat.ID, SenderID: buyerID, Content: "can I visit tomorrow?"},
			{ID: uuid.New(), Seq: 4, ChatID: chat.ID, SenderID: sellerID, Content: "sure, after 10am"},
		}

		f := newChatFixture()
		f.chatRepo.On("GetByRequestID", ctx, requestID).Return(chat, nil).Once()
		f.chatRepo.On("ListMessages", ctx, chat.ID).Return(messages, nil).Once()

		got, err := f.svc.GetByRequestID(ctx, sellerID, requestID)

		assert.NoError(t, err)
		assert.Equal(t, messages, got.Messages, "messages must come back exactly as the repository ordered them")
		for i := 1; i < len(got.Messages); i++ {
			assert.Less(t, got.Messages[i-1].Seq, got.Messages[i].Seq)
		}
	})

	t.Run("Outsider denied", func(t *testing.T) {
		f := newChatFixture()
		f.chatRepo.On("GetByRequestID", ctx, requestID).Return(chat, nil).Once()

		_, err := f.svc.GetByRequestID(ctx, uuid.New(), requestID)

		assert.ErrorIs(t, err, service.ErrNotChatParty)
		f.chatRepo.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything)
	})

	t.Run("No chat yet", func(t *testing.T) {
		f := newChatFixture()
		f.chatRepo.On("GetByRequestID", ctx, requestID).Return(nil, nil).Once()

		_, err := f.svc.GetByRequestID(ctx, buyerID, requestID)

		assert.ErrorIs(t, err, service.ErrChatNotFound)
	})
}
