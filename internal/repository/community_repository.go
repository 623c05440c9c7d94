package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pawmarket/internal/domain"
)

type CommunityRepository interface {
	Create(ctx context.Context, post *domain.CommunityPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityPost, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.CommunityPost, int64, error)
	Update(ctx context.Context, post *domain.CommunityPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *domain.CommunityComment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.CommunityComment, error)
}

type communityRepository struct {
	db *sqlx.DB
}

func NewCommunityRepository(db *sqlx.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, post *domain.CommunityPost) error {
	query := `
		INSERT INTO community_posts (post_id, author_id, content, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.AuthorID, post.Content, post.ImagePath,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *communityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityPost, error) {
	var post domain.CommunityPost
	query := `SELECT * FROM community_posts WHERE post_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *communityRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.CommunityPost, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM community_posts WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, err
	}

	var posts []domain.CommunityPost
	query := `
		SELECT * FROM community_posts WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &posts, query, params.PageSize, params.Offset())
	return posts, total, err
}

func (r *communityRepository) Update(ctx context.Context, post *domain.CommunityPost) error {
	query := `
		UPDATE community_posts
		SET content = :content, image_path = :image_path, updated_at = NOW()
		WHERE post_id = :post_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, post)
	return err
}

func (r *communityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE community_posts SET deleted_at = NOW() WHERE post_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *communityRepository) Like(ctx context.Context, postID, userID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO community_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, postID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE community_posts SET like_count = like_count + 1 WHERE post_id = $1`, postID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *communityRepository) AddComment(ctx context.Context, comment *domain.CommunityComment) error {
	query := `
		INSERT INTO community_comments (comment_id, post_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content,
	).Scan(&comment.CreatedAt)
}

func (r *communityRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.CommunityComment, error) {
	var comments []domain.CommunityComment
	query := `
		SELECT * FROM community_comments
		WHERE post_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, comment_id`

	err := r.db.SelectContext(ctx, &comments, query, postID)
	return comments, err
}
