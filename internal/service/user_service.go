package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

var (
	ErrCannotRateSelf = errors.New("users cannot rate themselves")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	RateUser(ctx context.Context, raterID, userID uuid.UUID, input domain.RateUserInput) error
	GetRatings(ctx context.Context, userID uuid.UUID) ([]domain.Rating, error)
	SetVerificationStatus(ctx context.Context, userID uuid.UUID, status string) error
	// DeleteAccount soft-deletes the user and revokes every refresh session.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) UserService {
	return &userService{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.BusinessName != nil {
		user.BusinessName = input.BusinessName
	}
	if input.Address != nil {
		user.Address = input.Address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RateUser(ctx context.Context, raterID, userID uuid.UUID, input domain.RateUserInput) error {
	if raterID == userID {
		return ErrCannotRateSelf
	}
	if input.Value < 1 || input.Value > 5 {
		return ErrInvalidRating
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rating := &domain.Rating{
		ID:      uuid.New(),
		UserID:  userID,
		RaterID: raterID,
		Value:   input.Value,
	}
	return s.userRepo.AddRating(ctx, rating)
}

func (s *userService) GetRatings(ctx context.Context, userID uuid.UUID) ([]domain.Rating, error) {
	return s.userRepo.GetRatings(ctx, userID)
}

func (s *userService) SetVerificationStatus(ctx context.Context, userID uuid.UUID, status string) error {
	switch status {
	case domain.VerificationPending, domain.VerificationApproved, domain.VerificationRejected:
	default:
		return domain.NewValidationError("invalid verification status", "status")
	}
	return s.userRepo.SetVerificationStatus(ctx, userID, status)
}

func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.RevokeAllForUser(ctx, userID)
}
