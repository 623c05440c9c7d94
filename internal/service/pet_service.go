package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

var (
	ErrPetNotFound        = errors.New("pet not found")
	ErrNotPetOwner        = errors.New("only the seller who listed this pet may modify it")
	ErrInvalidTransition  = errors.New("pet status cannot move backwards")
	ErrBusinessUnverified = errors.New("business account is not approved yet")
)

type PetImage struct {
	FileName string
	Size     int64
	MimeType string
	Reader   io.Reader
}

type PetService interface {
	Create(ctx context.Context, seller *domain.User, input domain.CreatePetInput, images []PetImage) (*domain.Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	List(ctx context.Context, filter domain.PetFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Pet], error)
	Update(ctx context.Context, sellerID uuid.UUID, id uuid.UUID, input domain.UpdatePetInput) (*domain.Pet, error)
	Delete(ctx context.Context, sellerID uuid.UUID, id uuid.UUID) error
}

type petService struct {
	petRepo  repository.PetRepository
	userRepo repository.UserRepository
	media    MediaService
	redis    *redis.Client
}

func NewPetService(petRepo repository.PetRepository, userRepo repository.UserRepository, media MediaService, redis *redis.Client) PetService {
	return &petService{
		petRepo:  petRepo,
		userRepo: userRepo,
		media:    media,
		redis:    redis,
	}
}

func (s *petService) Create(ctx context.Context, seller *domain.User, input domain.CreatePetInput, images []PetImage) (*domain.Pet, error) {
	if verr := domain.ValidateCreatePet(input); verr != nil {
		return nil, verr
	}
	if seller.VerificationStatus == domain.VerificationRejected {
		return nil, ErrBusinessUnverified
	}

	pet := &domain.Pet{
		ID:       uuid.New(),
		SellerID: seller.ID,
		Name:     input.Name,
		Species:  input.Species,
		Price:    input.Price,
		Status:   string(domain.PetAvailable),
	}
	if input.Breed != "" {
		pet.Breed = &input.Breed
	}
	if input.AgeMonths > 0 {
		pet.AgeMonths = &input.AgeMonths
	}
	if input.Gender != "" {
		pet.Gender = &input.Gender
	}
	if input.Description != "" {
		pet.Description = &input.Description
	}
	if input.HealthInfo != "" {
		pet.HealthInfo = &input.HealthInfo
	}
	if input.Requirements != "" {
		pet.Requirements = &input.Requirements
	}

	var uploaded []string
	for _, img := range images {
		path, err := s.media.Upload(ctx, "pets", img.FileName, img.Size, img.MimeType, img.Reader)
		if err != nil {
			for _, p := range uploaded {
				_ = s.media.Remove(ctx, p)
			}
			return nil, err
		}
		uploaded = append(uploaded, path)
	}
	pet.Images = uploaded

	if err := s.petRepo.Create(ctx, pet); err != nil {
		for _, p := range uploaded {
			_ = s.media.Remove(ctx, p)
		}
		return nil, err
	}

	s.invalidateListCache(ctx)
	return pet, nil
}

func (s *petService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	sellers, err := userSummariesByID(ctx, s.userRepo, []uuid.UUID{pet.SellerID})
	if err != nil {
		return nil, err
	}
	pet.Seller = sellers[pet.SellerID]
	return pet, nil
}

func (s *petService) List(ctx context.Context, filter domain.PetFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Pet], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("pets:%s:%s:%s:page:%d:size:%d",
		filter.Species, filter.Status, filter.SellerID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Pet]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	pets, total, err := s.petRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Pet]{}, err
	}

	sellerIDs := make([]uuid.UUID, 0, len(pets))
	for i := range pets {
		sellerIDs = append(sellerIDs, pets[i].SellerID)
	}
	sellers, err := userSummariesByID(ctx, s.userRepo, sellerIDs)
	if err != nil {
		return domain.PaginatedResponse[domain.Pet]{}, err
	}
	for i := range pets {
		pets[i].Seller = sellers[pets[i].SellerID]
	}

	result := domain.NewPaginatedResponse(pets, params.Page, params.PageSize, total)

	if s.redis != nil {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, 2*time.Minute).Err()
		}
	}

	return result, nil
}

func (s *petService) Update(ctx context.Context, sellerID uuid.UUID, id uuid.UUID, input domain.UpdatePetInput) (*domain.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.SellerID != sellerID {
		return nil, ErrNotPetOwner
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Breed != nil {
		pet.Breed = input.Breed
	}
	if input.AgeMonths != nil {
		pet.AgeMonths = input.AgeMonths
	}
	if input.Gender != nil {
		pet.Gender = input.Gender
	}
	if input.Price != nil {
		pet.Price = *input.Price
	}
	if input.Description != nil {
		pet.Description = input.Description
	}
	if input.HealthInfo != nil {
		pet.HealthInfo = input.HealthInfo
	}
	if input.Requirements != nil {
		pet.Requirements = input.Requirements
	}
	if input.Status != nil {
		next := domain.PetStatus(*input.Status)
		current := domain.PetStatus(pet.Status)
		if !current.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		if next != current {
			// Guarded update so a seller marking the pet sold cannot clobber
			// an adoption that settled after we loaded it.
			ok, err := s.petRepo.UpdateStatus(ctx, pet.ID, string(next), []string{string(current)})
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrInvalidTransition
			}
		}
		pet.Status = string(next)
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return pet, nil
}

func (s *petService) Delete(ctx context.Context, sellerID uuid.UUID, id uuid.UUID) error {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pet == nil {
		return ErrPetNotFound
	}
	if pet.SellerID != sellerID {
		return ErrNotPetOwner
	}

	if err := s.petRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Stored images go with the listing.
	for _, path := range pet.Images {
		_ = s.media.Remove(ctx, path)
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *petService) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "pets:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
