package unit_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
	"pawmarket/internal/service"
	"pawmarket/tests/mocks"
)

func TestPetService_Create(t *testing.T) {
	ctx := context.Background()
	businessName := "Happy Paws"
	seller := &domain.User{
		ID:                 uuid.New(),
		Email:              "shelter@example.com",
		Role:               "business",
		BusinessName:       &businessName,
		VerificationStatus: domain.VerificationPending,
	}
	input := domain.CreatePetInput{Name: "Rex", Species: "dog", Price: 150}

	t.Run("Success with images", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		mockMedia := new(mocks.MediaService)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), mockMedia, nil)

		mockMedia.On("Upload", ctx, "pets", "rex.jpg", int64(4), "image/jpeg", mock.Anything).Return("pets/2026/08/abc.jpg", nil).Once()
		mockPets.On("Create", ctx, mock.MatchedBy(func(p *domain.Pet) bool {
			return p.Name == "Rex" && p.Status == "available" && len(p.Images) == 1
		})).Return(nil).Once()

		images := []service.PetImage{{FileName: "rex.jpg", Size: 4, MimeType: "image/jpeg", Reader: strings.NewReader("data")}}
		pet, err := svc.Create(ctx, seller, input, images)

		assert.NoError(t, err)
		assert.Equal(t, "available", pet.Status)
		mockPets.AssertExpectations(t)
	})

	t.Run("Rejected business cannot list", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		rejected := &domain.User{ID: uuid.New(), Role: "business", VerificationStatus: domain.VerificationRejected}
		_, err := svc.Create(ctx, rejected, input, nil)

		assert.ErrorIs(t, err, service.ErrBusinessUnverified)
		mockPets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing fields", func(t *testing.T) {
		svc := service.NewPetService(new(mocks.PetRepository), new(mocks.UserRepository), new(mocks.MediaService), nil)

		_, err := svc.Create(ctx, seller, domain.CreatePetInput{}, nil)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "species")
	})

	t.Run("Failed upload rolls back earlier ones", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		mockMedia := new(mocks.MediaService)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), mockMedia, nil)

		mockMedia.On("Upload", ctx, "pets", "a.jpg", mock.Anything, mock.Anything, mock.Anything).Return("pets/2026/08/a.jpg", nil).Once()
		mockMedia.On("Upload", ctx, "pets", "b.jpg", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()
		mockMedia.On("Remove", ctx, "pets/2026/08/a.jpg").Return(nil).Once()

		images := []service.PetImage{
			{FileName: "a.jpg", Reader: strings.NewReader("a")},
			{FileName: "b.jpg", Reader: strings.NewReader("b")},
		}
		_, err := svc.Create(ctx, seller, input, images)

		assert.Error(t, err)
		mockMedia.AssertExpectations(t)
		mockPets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPetService_Update(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	pet := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Species: "dog", Status: "pending"}

	t.Run("Owner updates", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		fresh := *pet
		newName := "Rexy"
		mockPets.On("GetByID", ctx, pet.ID).Return(&fresh, nil).Once()
		mockPets.On("Update", ctx, mock.MatchedBy(func(p *domain.Pet) bool {
			return p.Name == "Rexy"
		})).Return(nil).Once()

		got, err := svc.Update(ctx, sellerID, pet.ID, domain.UpdatePetInput{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "Rexy", got.Name)
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		fresh := *pet
		newName := "Rexy"
		mockPets.On("GetByID", ctx, pet.ID).Return(&fresh, nil).Once()

		_, err := svc.Update(ctx, uuid.New(), pet.ID, domain.UpdatePetInput{Name: &newName})

		assert.ErrorIs(t, err, service.ErrNotPetOwner)
		mockPets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Status cannot move backwards", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		fresh := *pet
		back := "available"
		mockPets.On("GetByID", ctx, pet.ID).Return(&fresh, nil).Once()

		_, err := svc.Update(ctx, sellerID, pet.ID, domain.UpdatePetInput{Status: &back})

		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("Adopted is final", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		adopted := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Status: "adopted"}
		forward := "pending"
		mockPets.On("GetByID", ctx, adopted.ID).Return(adopted, nil).Once()

		_, err := svc.Update(ctx, sellerID, adopted.ID, domain.UpdatePetInput{Status: &forward})

		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("Seller marks pet sold", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		fresh := *pet
		sold := "sold"
		mockPets.On("GetByID", ctx, pet.ID).Return(&fresh, nil).Once()
		mockPets.On("UpdateStatus", ctx, pet.ID, "sold", []string{"pending"}).Return(true, nil).Once()
		mockPets.On("Update", ctx, mock.Anything).Return(nil).Once()

		got, err := svc.Update(ctx, sellerID, pet.ID, domain.UpdatePetInput{Status: &sold})

		assert.NoError(t, err)
		assert.Equal(t, "sold", got.Status)
		mockPets.AssertExpectations(t)
	})

	t.Run("Status moved since load", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		fresh := *pet
		sold := "sold"
		mockPets.On("GetByID", ctx, pet.ID).Return(&fresh, nil).Once()
		mockPets.On("UpdateStatus", ctx, pet.ID, "sold", []string{"pending"}).Return(false, nil).Once()

		_, err := svc.Update(ctx, sellerID, pet.ID, domain.UpdatePetInput{Status: &sold})

		assert.ErrorIs(t, err, service.ErrInvalidTransition)
		mockPets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPetService_Delete(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()

	t.Run("Removes stored images", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		mockMedia := new(mocks.MediaService)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), mockMedia, nil)

		pet := &domain.Pet{
			ID:       uuid.New(),
			SellerID: sellerID,
			Name:     "Rex",
			Status:   "available",
			Images:   []string{"pets/2026/08/a.jpg", "pets/2026/08/b.jpg"},
		}
		mockPets.On("GetByID", ctx, pet.ID).Return(pet, nil).Once()
		mockPets.On("Delete", ctx, pet.ID).Return(nil).Once()
		mockMedia.On("Remove", ctx, "pets/2026/08/a.jpg").Return(nil).Once()
		mockMedia.On("Remove", ctx, "pets/2026/08/b.jpg").Return(nil).Once()

		err := svc.Delete(ctx, sellerID, pet.ID)

		assert.NoError(t, err)
		mockMedia.AssertExpectations(t)
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		mockPets := new(mocks.PetRepository)
		svc := service.NewPetService(mockPets, new(mocks.UserRepository), new(mocks.MediaService), nil)

		pet := &domain.Pet{ID: uuid.New(), SellerID: sellerID, Name: "Rex", Status: "available"}
		mockPets.On("GetByID", ctx, pet.ID).Return(pet, nil).Once()

		err := svc.Delete(ctx, uuid.New(), pet.ID)

		assert.ErrorIs(t, err, service.ErrNotPetOwner)
		mockPets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
