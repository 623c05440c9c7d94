package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      types.JSONText   `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifNewAdoptionRequest NotificationType = "NEW_ADOPTION_REQUEST"
	NotifRequestApproved    NotificationType = "REQUEST_APPROVED"
	NotifRequestRejected    NotificationType = "REQUEST_REJECTED"
	NotifNewChatMessage     NotificationType = "NEW_CHAT_MESSAGE"
)
