package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pawmarket/internal/domain"
)

type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	// GetByIDs fetches the given pets in one query; missing ids are absent
	// from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Pet, error)
	List(ctx context.Context, filter domain.PetFilter, params domain.PaginationParams) ([]domain.Pet, int64, error)
	Update(ctx context.Context, pet *domain.Pet) error
	// UpdateStatus moves a pet to the given status only when its current
	// status is one of allowedFrom. Returns false when the guard did not
	// match, without error.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, allowedFrom []string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type petRepository struct {
	db *sqlx.DB
}

func NewPetRepository(db *sqlx.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	query := `
		INSERT INTO pets (pet_id, seller_id, name, species, breed, age_months, gender,
			price, description, health_info, requirements, images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		pet.ID, pet.SellerID, pet.Name, pet.Species, pet.Breed, pet.AgeMonths, pet.Gender,
		pet.Price, pet.Description, pet.HealthInfo, pet.Requirements, pet.Images, pet.Status,
	).Scan(&pet.CreatedAt, &pet.UpdatedAt)
}

func (r *petRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	var pet domain.Pet
	query := `SELECT * FROM pets WHERE pet_id = $1`

	err := r.db.GetContext(ctx, &pet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var pets []domain.Pet
	query := `SELECT * FROM pets WHERE pet_id = ANY($1)`

	err := r.db.SelectContext(ctx, &pets, query, pq.Array(ids))
	return pets, err
}

func (r *petRepository) List(ctx context.Context, filter domain.PetFilter, params domain.PaginationParams) ([]domain.Pet, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.Species != "" {
		where += fmt.Sprintf(" AND species = $%d", idx)
		args = append(args, filter.Species)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.SellerID != "" {
		where += fmt.Sprintf(" AND seller_id = $%d", idx)
		args = append(args, filter.SellerID)
		idx++
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pets"+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM pets%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", where, idx, idx+1)
	args = append(args, params.PageSize, params.Offset())

	var pets []domain.Pet
	if err := r.db.SelectContext(ctx, &pets, query, args...); err != nil {
		return nil, 0, err
	}
	return pets, total, nil
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	// Status moves only through UpdateStatus and the adoption approval
	// transaction; this write never touches it.
	query := `
		UPDATE pets
		SET name = :name, breed = :breed, age_months = :age_months, gender = :gender,
			price = :price, description = :description, health_info = :health_info,
			requirements = :requirements, images = :images,
			updated_at = NOW()
		WHERE pet_id = :pet_id`

	_, err := r.db.NamedExecContext(ctx, query, pet)
	return err
}

func (r *petRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, allowedFrom []string) (bool, error) {
	query := `
		UPDATE pets
		SET status = $2, updated_at = NOW()
		WHERE pet_id = $1 AND status = ANY($3)`

	res, err := r.db.ExecContext(ctx, query, id, status, pq.Array(allowedFrom))
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *petRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pets WHERE pet_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
