package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Pet struct {
	ID           uuid.UUID      `json:"id" db:"pet_id"`
	SellerID     uuid.UUID      `json:"seller_id" db:"seller_id"`
	AdopterID    *uuid.UUID     `json:"adopter_id,omitempty" db:"adopter_id"`
	Name         string         `json:"name" db:"name"`
	Species      string         `json:"species" db:"species"`
	Breed        *string        `json:"breed,omitempty" db:"breed"`
	AgeMonths    *int           `json:"age_months,omitempty" db:"age_months"`
	Gender       *string        `json:"gender,omitempty" db:"gender"`
	Price        float64        `json:"price" db:"price"`
	Description  *string        `json:"description,omitempty" db:"description"`
	HealthInfo   *string        `json:"health_info,omitempty" db:"health_info"`
	Requirements *string        `json:"requirements,omitempty" db:"requirements"`
	Images       pq.StringArray `json:"images" db:"images"`
	Status       string         `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	Seller *UserSummary `json:"seller,omitempty" db:"-"`
}

// UserSummary is the read-model projection attached to pets and messages
// in place of the full user record.
type UserSummary struct {
	ID            uuid.UUID `json:"id" db:"user_id"`
	Name          string    `json:"name" db:"-"`
	Role          string    `json:"role" db:"role"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
}

type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetPending   PetStatus = "pending"
	PetAdopted   PetStatus = "adopted"
	PetSold      PetStatus = "sold"
)

func (s PetStatus) IsValid() bool {
	switch s {
	case PetAvailable, PetPending, PetAdopted, PetSold:
		return true
	default:
		return false
	}
}

// statusRank orders pet statuses along the lifecycle. Transitions may only
// move forward: available -> pending -> adopted/sold.
func (s PetStatus) rank() int {
	switch s {
	case PetAvailable:
		return 0
	case PetPending:
		return 1
	case PetAdopted, PetSold:
		return 2
	default:
		return -1
	}
}

func (s PetStatus) CanTransitionTo(next PetStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	return next.rank() > s.rank()
}

// IsFinal reports whether the pet can no longer change hands.
func (s PetStatus) IsFinal() bool {
	return s == PetAdopted || s == PetSold
}

type CreatePetInput struct {
	Name         string  `json:"name" form:"name"`
	Species      string  `json:"species" form:"species"`
	Breed        string  `json:"breed" form:"breed"`
	AgeMonths    int     `json:"age_months" form:"age_months"`
	Gender       string  `json:"gender" form:"gender"`
	Price        float64 `json:"price" form:"price"`
	Description  string  `json:"description" form:"description"`
	HealthInfo   string  `json:"health_info" form:"health_info"`
	Requirements string  `json:"requirements" form:"requirements"`
}

type UpdatePetInput struct {
	Name         *string  `json:"name,omitempty"`
	Breed        *string  `json:"breed,omitempty"`
	AgeMonths    *int     `json:"age_months,omitempty"`
	Gender       *string  `json:"gender,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Description  *string  `json:"description,omitempty"`
	HealthInfo   *string  `json:"health_info,omitempty"`
	Requirements *string  `json:"requirements,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

type PetFilter struct {
	Species  string `query:"species"`
	Status   string `query:"status"`
	SellerID string `query:"seller_id"`
}

func ValidateCreatePet(input CreatePetInput) *ValidationError {
	var fields []string
	if input.Name == "" {
		fields = append(fields, "name")
	}
	if input.Species == "" {
		fields = append(fields, "species")
	}
	if input.Price < 0 {
		fields = append(fields, "price")
	}
	if input.AgeMonths < 0 {
		fields = append(fields, "age_months")
	}
	if len(fields) > 0 {
		return NewValidationError("invalid pet data", fields...)
	}
	return nil
}
