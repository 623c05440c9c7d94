package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
)

type AdoptionRequestRepository struct {
	mock.Mock
}

func (m *AdoptionRequestRepository) Create(ctx context.Context, req *domain.AdoptionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *AdoptionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdoptionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdoptionRequest), args.Error(1)
}

func (m *AdoptionRequestRepository) ExistsPending(ctx context.Context, petID, requesterID uuid.UUID) (bool, error) {
	args := m.Called(ctx, petID, requesterID)
	return args.Bool(0), args.Error(1)
}

func (m *AdoptionRequestRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.AdoptionRequest, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]domain.AdoptionRequest), args.Error(1)
}

func (m *AdoptionRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.AdoptionRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.AdoptionRequest), args.Error(1)
}

func (m *AdoptionRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *AdoptionRequestRepository) ApproveAndAdopt(ctx context.Context, requestID, petID, buyerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, requestID, petID, buyerID)
	return args.Bool(0), args.Error(1)
}
