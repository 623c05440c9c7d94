package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

var (
	ErrRequestNotFound   = errors.New("adoption request not found")
	ErrDuplicateRequest  = errors.New("a pending request for this pet already exists")
	ErrCannotAdoptOwnPet = errors.New("sellers cannot request their own pets")
	ErrPetNotAdoptable   = errors.New("pet is not available for adoption")
	ErrNotRequestSeller  = errors.New("only the seller may decide this request")
	ErrRequestSettled    = errors.New("adoption request is no longer pending")
)

type AdoptionService interface {
	CreateRequest(ctx context.Context, requester *domain.User, input domain.CreateAdoptionRequestInput) (*domain.AdoptionRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdoptionRequest, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.AdoptionRequest, error)
	Reject(ctx context.Context, callerID, requestID uuid.UUID) (*domain.AdoptionRequest, error)
}

type adoptionService struct {
	adoptionRepo repository.AdoptionRequestRepository
	petRepo      repository.PetRepository
	userRepo     repository.UserRepository
	notifService NotificationService
}

func NewAdoptionService(adoptionRepo repository.AdoptionRequestRepository, petRepo repository.PetRepository, userRepo repository.UserRepository, notifService NotificationService) AdoptionService {
	return &adoptionService{
		adoptionRepo: adoptionRepo,
		petRepo:      petRepo,
		userRepo:     userRepo,
		notifService: notifService,
	}
}

func (s *adoptionService) CreateRequest(ctx context.Context, requester *domain.User, input domain.CreateAdoptionRequestInput) (*domain.AdoptionRequest, error) {
	if input.PetID == uuid.Nil {
		return nil, domain.NewValidationError("pet_id is required", "pet_id")
	}

	pet, err := s.petRepo.GetByID(ctx, input.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.SellerID == requester.ID {
		return nil, ErrCannotAdoptOwnPet
	}
	if domain.PetStatus(pet.Status).IsFinal() {
		return nil, ErrPetNotAdoptable
	}

	// One pending request per (pet, requester); other requesters may still
	// queue up on the same pet.
	exists, err := s.adoptionRepo.ExistsPending(ctx, pet.ID, requester.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	req := &domain.AdoptionRequest{
		ID:          uuid.New(),
		PetID:       pet.ID,
		RequesterID: requester.ID,
		SellerID:    pet.SellerID,
		Status:      domain.RequestPending,
	}
	if input.Message != "" {
		req.Message = &input.Message
	}

	if err := s.adoptionRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.notifService.NotifyNewAdoptionRequest(ctx, pet.SellerID, requester.DisplayName(), pet.Name, req.ID); err != nil {
		log.Printf("Failed to notify seller of new request: %v", err)
	}

	return req, nil
}

func (s *adoptionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdoptionRequest, error) {
	req, err := s.adoptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *adoptionService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.AdoptionRequest, error) {
	requests, err := s.adoptionRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.attachSummaries(ctx, requests)
}

func (s *adoptionService) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.AdoptionRequest, error) {
	requests, err := s.adoptionRepo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachSummaries(ctx, requests)
}

// attachSummaries resolves the pet and requester of each request with one
// batched lookup per entity type.
func (s *adoptionService) attachSummaries(ctx context.Context, requests []domain.AdoptionRequest) ([]domain.AdoptionRequest, error) {
	if len(requests) == 0 {
		return requests, nil
	}

	petIDs := make([]uuid.UUID, 0, len(requests))
	requesterIDs := make([]uuid.UUID, 0, len(requests))
	for i := range requests {
		petIDs = append(petIDs, requests[i].PetID)
		requesterIDs = append(requesterIDs, requests[i].RequesterID)
	}

	pets, err := petsByID(ctx, s.petRepo, petIDs)
	if err != nil {
		return nil, err
	}
	requesters, err := userSummariesByID(ctx, s.userRepo, requesterIDs)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Pet = pets[requests[i].PetID]
		requests[i].Requester = requesters[requests[i].RequesterID]
	}
	return requests, nil
}

// Reject declines a pending request. Only the seller may do this; it leaves
// the pet's status untouched regardless of the chat's acceptance flags.
func (s *adoptionService) Reject(ctx context.Context, callerID, requestID uuid.UUID) (*domain.AdoptionRequest, error) {
	req, err := s.adoptionRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.SellerID != callerID {
		return nil, ErrNotRequestSeller
	}

	ok, err := s.adoptionRepo.UpdateStatus(ctx, req.ID, domain.RequestPending, domain.RequestRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestSettled
	}
	req.Status = domain.RequestRejected

	petName := "the pet"
	if pet, err := s.petRepo.GetByID(ctx, req.PetID); err == nil && pet != nil {
		petName = pet.Name
	}
	if err := s.notifService.NotifyRequestRejected(ctx, req.RequesterID, petName, req.ID); err != nil {
		log.Printf("Failed to notify requester of rejection: %v", err)
	}

	return req, nil
}
