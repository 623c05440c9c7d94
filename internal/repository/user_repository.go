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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDs fetches the given users in one query. Missing and deleted ids
	// are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetVerificationStatus(ctx context.Context, userID uuid.UUID, status string) error
	AddRating(ctx context.Context, rating *domain.Rating) error
	GetRatings(ctx context.Context, userID uuid.UUID) ([]domain.Rating, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, role,
			first_name, last_name, business_name, business_type, address,
			license_number, tax_id, verification_status)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.BusinessName, user.BusinessType, user.Address,
		user.LicenseNumber, user.TaxID, user.VerificationStatus,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = lower($1) AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []domain.User
	query := `SELECT * FROM users WHERE user_id = ANY($1) AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &users, query, pq.Array(ids))
	return users, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = lower($1) AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name,
			business_name = :business_name, address = :address,
			password_hash = :password_hash, updated_at = NOW()
		WHERE user_id = :user_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) SetVerificationStatus(ctx context.Context, userID uuid.UUID, status string) error {
	query := `
		UPDATE users
		SET verification_status = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
		RETURNING user_id`

	var id uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, userID, status).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("user not found")
	}
	return err
}

// AddRating upserts the rater's rating and recomputes the aggregate on the
// rated user inside one transaction.
func (r *userRepository) AddRating(ctx context.Context, rating *domain.Rating) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_ratings (rating_id, user_id, rater_id, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, rater_id)
		DO UPDATE SET value = EXCLUDED.value, created_at = NOW()
		RETURNING created_at`

	if err := tx.QueryRowxContext(ctx, query,
		rating.ID, rating.UserID, rating.RaterID, rating.Value,
	).Scan(&rating.CreatedAt); err != nil {
		return err
	}

	aggregate := `
		UPDATE users
		SET average_rating = sub.avg, rating_count = sub.cnt, updated_at = NOW()
		FROM (
			SELECT COALESCE(AVG(value), 0) AS avg, COUNT(*) AS cnt
			FROM user_ratings WHERE user_id = $1
		) sub
		WHERE user_id = $1`

	if _, err := tx.ExecContext(ctx, aggregate, rating.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *userRepository) GetRatings(ctx context.Context, userID uuid.UUID) ([]domain.Rating, error) {
	var ratings []domain.Rating
	query := `SELECT * FROM user_ratings WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &ratings, query, userID)
	return ratings, err
}
