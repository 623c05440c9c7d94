package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pawmarket/internal/domain"
)

// ErrPetUnavailable is returned by ApproveAndAdopt when the pet was already
// adopted or sold through another negotiation.
var ErrPetUnavailable = errors.New("pet is no longer available")

type AdoptionRequestRepository interface {
	Create(ctx context.Context, req *domain.AdoptionRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdoptionRequest, error)
	ExistsPending(ctx context.Context, petID, requesterID uuid.UUID) (bool, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.AdoptionRequest, error)
	// UpdateStatus transitions the request from `from` to `to`. Returns false
	// when the request was not in `from`, without error.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	// ApproveAndAdopt applies the dual-acceptance commit: request pending ->
	// approved and pet -> adopted with the buyer recorded, as one transaction.
	// Returns false when the request was already settled by a concurrent
	// accept. Returns ErrPetUnavailable when the pet can no longer be adopted.
	ApproveAndAdopt(ctx context.Context, requestID, petID, buyerID uuid.UUID) (bool, error)
}

type adoptionRequestRepository struct {
	db *sqlx.DB
}

func NewAdoptionRequestRepository(db *sqlx.DB) AdoptionRequestRepository {
	return &adoptionRequestRepository{db: db}
}

func (r *adoptionRequestRepository) Create(ctx context.Context, req *domain.AdoptionRequest) error {
	query := `
		INSERT INTO adoption_requests (request_id, pet_id, requester_id, seller_id, status, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.PetID, req.RequesterID, req.SellerID, req.Status, req.Message,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *adoptionRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdoptionRequest, error) {
	var req domain.AdoptionRequest
	query := `SELECT * FROM adoption_requests WHERE request_id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *adoptionRequestRepository) ExistsPending(ctx context.Context, petID, requesterID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM adoption_requests
			WHERE pet_id = $1 AND requester_id = $2 AND status = 'pending'
		)`
	err := r.db.GetContext(ctx, &exists, query, petID, requesterID)
	return exists, err
}

func (r *adoptionRequestRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.AdoptionRequest, error) {
	var requests []domain.AdoptionRequest
	query := `SELECT * FROM adoption_requests WHERE seller_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &requests, query, sellerID)
	return requests, err
}

func (r *adoptionRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.AdoptionRequest, error) {
	var requests []domain.AdoptionRequest
	query := `SELECT * FROM adoption_requests WHERE requester_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &requests, query, requesterID)
	return requests, err
}

func (r *adoptionRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	query := `
		UPDATE adoption_requests
		SET status = $3, updated_at = NOW()
		WHERE request_id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *adoptionRequestRepository) ApproveAndAdopt(ctx context.Context, requestID, petID, buyerID uuid.UUID) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// The status guard on the request is the compare-and-swap that makes the
	// compound transition fire exactly once under racing accepts.
	res, err := tx.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = 'approved', updated_at = NOW()
		WHERE request_id = $1 AND status = 'pending'`, requestID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE pets
		SET status = 'adopted', adopter_id = $2, updated_at = NOW()
		WHERE pet_id = $1 AND status IN ('available', 'pending')`, petID, buyerID)
	if err != nil {
		return false, err
	}
	rows, err = res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// Another negotiation finalized this pet first; the rollback leaves
		// this request pending so the seller can reject it.
		return false, ErrPetUnavailable
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
