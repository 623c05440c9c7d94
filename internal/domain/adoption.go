package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdoptionRequest struct {
	ID          uuid.UUID `json:"id" db:"request_id"`
	PetID       uuid.UUID `json:"pet_id" db:"pet_id"`
	RequesterID uuid.UUID `json:"requester_id" db:"requester_id"`
	SellerID    uuid.UUID `json:"seller_id" db:"seller_id"`
	Status      string    `json:"status" db:"status"`
	Message     *string   `json:"message,omitempty" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Pet       *Pet         `json:"pet,omitempty" db:"-"`
	Requester *UserSummary `json:"requester,omitempty" db:"-"`
}

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type CreateAdoptionRequestInput struct {
	PetID   uuid.UUID `json:"pet_id"`
	Message string    `json:"message"`
}

type UpdateAdoptionRequestInput struct {
	Status string `json:"status"`
}
