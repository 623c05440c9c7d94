package service

import (
	"context"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

// Read models carry denormalized summaries (seller on a pet, requester on an
// adoption request, author on a post). They are attached here with one batched
// lookup per entity type; the repositories stay ignorant of response shaping.

func userSummariesByID(ctx context.Context, userRepo repository.UserRepository, ids []uuid.UUID) (map[uuid.UUID]*domain.UserSummary, error) {
	users, err := userRepo.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}

	summaries := make(map[uuid.UUID]*domain.UserSummary, len(users))
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

func petsByID(ctx context.Context, petRepo repository.PetRepository, ids []uuid.UUID) (map[uuid.UUID]*domain.Pet, error) {
	pets, err := petRepo.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Pet, len(pets))
	for i := range pets {
		byID[pets[i].ID] = &pets[i]
	}
	return byID, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
