package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat is the negotiation thread bound to a single adoption request. The two
// acceptance flags are independent; the request is approved the moment both
// are true.
type Chat struct {
	ID                uuid.UUID `json:"id" db:"chat_id"`
	AdoptionRequestID uuid.UUID `json:"adoption_request_id" db:"adoption_request_id"`
	BuyerID           uuid.UUID `json:"buyer_id" db:"buyer_id"`
	SellerID          uuid.UUID `json:"seller_id" db:"seller_id"`
	BuyerAccepted     bool      `json:"buyer_accepted" db:"buyer_accepted"`
	SellerAccepted    bool      `json:"seller_accepted" db:"seller_accepted"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	Messages []ChatMessage `json:"messages,omitempty" db:"-"`
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id" db:"message_id"`
	Seq       int64     `json:"seq" db:"seq"`
	ChatID    uuid.UUID `json:"chat_id" db:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (c *Chat) IsParty(userID uuid.UUID) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

func (c *Chat) BothAccepted() bool {
	return c.BuyerAccepted && c.SellerAccepted
}

type SendMessageInput struct {
	Content string `json:"content"`
}
