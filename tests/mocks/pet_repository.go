package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pawmarket/internal/domain"
)

type PetRepository struct {
	mock.Mock
}

func (m *PetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *PetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

func (m *PetRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Pet, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pet), args.Error(1)
}

func (m *PetRepository) List(ctx context.Context, filter domain.PetFilter, params domain.PaginationParams) ([]domain.Pet, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Pet), args.Get(1).(int64), args.Error(2)
}

func (m *PetRepository) Update(ctx context.Context, pet *domain.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *PetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, allowedFrom []string) (bool, error) {
	args := m.Called(ctx, id, status, allowedFrom)
	return args.Bool(0), args.Error(1)
}

func (m *PetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
