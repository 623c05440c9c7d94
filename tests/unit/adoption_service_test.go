package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
	"pawmarket/internal/service"
	"pawmarket/tests/mocks"
)

func TestAdoptionService_CreateRequest(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	firstName := "Jane"
	requester := &domain.User{ID: uuid.New(), Email: "jane@example.com", Role: "regular", FirstName: &firstName}
	pet := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Species: "dog", Status: "available"}

	t.Run("Success", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		mockNotif := new(mocks.NotificationService)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, new(mocks.UserRepository), mockNotif)

		mockPets.On("GetByID", ctx, pet.ID).Return(pet, nil).Once()
		mockAdoptions.On("ExistsPending", ctx, pet.ID, requester.ID).Return(false, nil).Once()
		mockAdoptions.On("Create", ctx, mock.MatchedBy(func(r *domain.AdoptionRequest) bool {
			return r.PetID == pet.ID && r.RequesterID == requester.ID &&
				r.SellerID == sellerID && r.Status == domain.RequestPending
		})).Return(nil).Once()
		mockNotif.On("NotifyNewAdoptionRequest", ctx, sellerID, "Jane", "Rex", mock.AnythingOfType("uuid.UUID")).Return(nil).Once()

		req, err := svc.CreateRequest(ctx, requester, domain.CreateAdoptionRequestInput{PetID: pet.ID, Message: "I have a garden"})

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestPending, req.Status)
		assert.NotNil(t, req.Message)
		mockAdoptions.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("Own pet", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, new(mocks.UserRepository), new(mocks.NotificationService))

		ownPet := &domain.Pet{ID: uuid.New(), SellerID: requester.ID, Name: "Rex", Status: "available"}
		mockPets.On("GetByID", ctx, ownPet.ID).Return(ownPet, nil).Once()

		_, err := svc.CreateRequest(ctx, requester, domain.CreateAdoptionRequestInput{PetID: ownPet.ID})

		assert.ErrorIs(t, err, service.ErrCannotAdoptOwnPet)
		mockAdoptions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Adopted pet", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewAdoptionService(new(mocks.AdoptionRequestRepository), mockPets, new(mocks.UserRepository), new(mocks.NotificationService))

		gone := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Status: "adopted"}
		mockPets.On("GetByID", ctx, gone.ID).Return(gone, nil).Once()

		_, err := svc.CreateRequest(ctx, requester, domain.CreateAdoptionRequestInput{PetID: gone.ID})

		assert.ErrorIs(t, err, service.ErrPetNotAdoptable)
	})

	t.Run("Duplicate pending request", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, new(mocks.UserRepository), new(mocks.NotificationService))

		mockPets.On("GetByID", ctx, pet.ID).Return(pet, nil).Once()
		mockAdoptions.On("ExistsPending", ctx, pet.ID, requester.ID).Return(true, nil).Once()

		_, err := svc.CreateRequest(ctx, requester, domain.CreateAdoptionRequestInput{PetID: pet.ID})

		assert.ErrorIs(t, err, service.ErrDuplicateRequest)
		mockAdoptions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown pet", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewAdoptionService(new(mocks.AdoptionRequestRepository), mockPets, new(mocks.UserRepository), new(mocks.NotificationService))

		missing := uuid.New()
		mockPets.On("GetByID", ctx, missing).Return(nil, nil).Once()

		_, err := svc.CreateRequest(ctx, requester, domain.CreateAdoptionRequestInput{PetID: missing})

		assert.ErrorIs(t, err, service.ErrPetNotFound)
	})
}

func TestAdoptionService_Reject(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	requesterID := uuid.New()
	pet := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Status: "available"}
	request := &domain.AdoptionRequest{
		ID:          uuid.New(),
		PetID:       pet.ID,
		RequesterID: requesterID,
		SellerID:    sellerID,
		Status:      domain.RequestPending,
	}

	t.Run("Seller rejects, pet untouched", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		mockNotif := new(mocks.NotificationService)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, new(mocks.UserRepository), mockNotif)

		mockAdoptions.On("GetByID", ctx, request.ID).Return(request, nil).Once()
		mockAdoptions.On("UpdateStatus", ctx, request.ID, domain.RequestPending, domain.RequestRejected).Return(true, nil).Once()
		mockPets.On("GetByID", ctx, pet.ID).Return(pet, nil).Once()
		mockNotif.On("NotifyRequestRejected", ctx, requesterID, "Rex", request.ID).Return(nil).Once()

		got, err := svc.Reject(ctx, sellerID, request.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestRejected, got.Status)
		mockPets.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockAdoptions.AssertExpectations(t)
	})

	t.Run("Requester cannot reject", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		svc := service.NewAdoptionService(mockAdoptions, new(mocks.PetRepository), new(mocks.UserRepository), new(mocks.NotificationService))

		mockAdoptions.On("GetByID", ctx, request.ID).Return(request, nil).Once()

		_, err := svc.Reject(ctx, requesterID, request.ID)

		assert.ErrorIs(t, err, service.ErrNotRequestSeller)
	})

	t.Run("Already settled", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		svc := service.NewAdoptionService(mockAdoptions, new(mocks.PetRepository), new(mocks.UserRepository), new(mocks.NotificationService))

		mockAdoptions.On("GetByID", ctx, request.ID).Return(request, nil).Once()
		mockAdoptions.On("UpdateStatus", ctx, request.ID, domain.RequestPending, domain.RequestRejected).Return(false, nil).Once()

		_, err := svc.Reject(ctx, sellerID, request.ID)

		assert.ErrorIs(t, err, service.ErrRequestSettled)
	})
}

func TestAdoptionService_ListBySeller(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()

	t.Run("attaches pet and requester summaries", func(t *testing.T) {
		firstName := "Jane"
		requester := domain.User{ID: uuid.New(), Email: "jane@example.com", Role: "regular", FirstName: &firstName}
		pet := domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Species: "dog", Status: "available"}
		requests := []domain.AdoptionRequest{
			{ID: uuid.New(), PetID: pet.ID, RequesterID: requester.ID, SellerID: sellerID, Status: domain.RequestPending},
		}

		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		mockUsers := new(mocks.UserRepository)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, mockUsers, new(mocks.NotificationService))

		mockAdoptions.On("ListBySeller", ctx, sellerID).Return(requests, nil)
		mockPets.On("GetByIDs", ctx, []uuid.UUID{pet.ID}).Return([]domain.Pet{pet}, nil)
		mockUsers.On("GetByIDs", ctx, []uuid.UUID{requester.ID}).Return([]domain.User{requester}, nil)

		result, err := svc.ListBySeller(ctx, sellerID)

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		if assert.NotNil(t, result[0].Pet) {
			assert.Equal(t, "Rex", result[0].Pet.Name)
		}
		if assert.NotNil(t, result[0].Requester) {
			assert.Equal(t, "Jane", result[0].Requester.Name)
		}
		mockPets.AssertNumberOfCalls(t, "GetByIDs", 1)
		mockUsers.AssertNumberOfCalls(t, "GetByIDs", 1)
	})

	t.Run("empty list skips lookups", func(t *testing.T) {
		mockAdoptions := new(mocks.AdoptionRequestRepository)
		mockPets := new(mocks.PetRepository)
		mockUsers := new(mocks.UserRepository)
		svc := service.NewAdoptionService(mockAdoptions, mockPets, mockUsers, new(mocks.NotificationService))

		mockAdoptions.On("ListBySeller", ctx, sellerID).Return([]domain.AdoptionRequest{}, nil)

		result, err := svc.ListBySeller(ctx, sellerID)

		assert.NoError(t, err)
		assert.Empty(t, result)
		mockPets.AssertNotCalled(t, "GetByIDs")
		mockUsers.AssertNotCalled(t, "GetByIDs")
	})
}
