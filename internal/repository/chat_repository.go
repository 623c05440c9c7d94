package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pawmarket/internal/domain"
)

// ErrChatExists is returned when a second chat is opened for the same
// adoption request.
var ErrChatExists = errors.New("chat already exists for this adoption request")

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error)
	GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.Chat, error)
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]domain.ChatMessage, error)
	// SetAccepted flips one party's acceptance flag and returns the chat with
	// both flags as they stand after the update. Already-true flags are left
	// untouched, so re-accepting is a no-op.
	SetAccepted(ctx context.Context, chatID uuid.UUID, buyer bool) (*domain.Chat, error)
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO chats (chat_id, adoption_request_id, buyer_id, seller_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		chat.ID, chat.AdoptionRequestID, chat.BuyerID, chat.SellerID,
	).Scan(&chat.CreatedAt, &chat.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrChatExists
	}
	return err
}

func (r *chatRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	query := `SELECT * FROM chats WHERE chat_id = $1`

	err := r.db.GetContext(ctx, &chat, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	query := `SELECT * FROM chats WHERE adoption_request_id = $1`

	err := r.db.GetContext(ctx, &chat, query, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (message_id, chat_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING seq, created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.ChatID, msg.SenderID, msg.Content,
	).Scan(&msg.Seq, &msg.CreatedAt)
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID uuid.UUID) ([]domain.ChatMessage, error) {
	var messages []domain.ChatMessage
	// seq is assigned by the insert sequence, so readers observe messages in
	// arrival order even when timestamps collide.
	query := `SELECT * FROM chat_messages WHERE chat_id = $1 ORDER BY seq`

	err := r.db.SelectContext(ctx, &messages, query, chatID)
	return messages, err
}

func (r *chatRepository) SetAccepted(ctx context.Context, chatID uuid.UUID, buyer bool) (*domain.Chat, error) {
	column := "seller_accepted"
	if buyer {
		column = "buyer_accepted"
	}

	var chat domain.Chat
	query := `
		UPDATE chats
		SET ` + column + ` = TRUE, updated_at = NOW()
		WHERE chat_id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &chat, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
