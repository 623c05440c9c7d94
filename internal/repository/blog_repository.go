package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pawmarket/internal/domain"
)

type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.BlogPost, int64, error)
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *domain.BlogComment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error)
}

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (post_id, author_id, title, content, image_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.AuthorID, post.Title, post.Content, post.ImagePath,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	var post domain.BlogPost
	query := `SELECT * FROM blog_posts WHERE post_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.BlogPost, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM blog_posts WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, err
	}

	var posts []domain.BlogPost
	query := `
		SELECT * FROM blog_posts WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &posts, query, params.PageSize, params.Offset())
	return posts, total, err
}

func (r *blogRepository) Update(ctx context.Context, post *domain.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = :title, content = :content, image_path = :image_path, updated_at = NOW()
		WHERE post_id = :post_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, post)
	return err
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE blog_posts SET deleted_at = NOW() WHERE post_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *blogRepository) Like(ctx context.Context, postID, userID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO blog_likes (post_id, user_id) VALUES ($1, $2)
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
			UPDATE blog_posts SET like_count = like_count + 1 WHERE post_id = $1`, postID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *blogRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM blog_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE blog_posts SET like_count = like_count - 1 WHERE post_id = $1 AND like_count > 0`, postID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *blogRepository) AddComment(ctx context.Context, comment *domain.BlogComment) error {
	query := `
		INSERT INTO blog_comments (comment_id, post_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content,
	).Scan(&comment.CreatedAt)
}

func (r *blogRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error) {
	var comments []domain.BlogComment
	query := `
		SELECT * FROM blog_comments
		WHERE post_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, comment_id`

	err := r.db.SelectContext(ctx, &comments, query, postID)
	return comments, err
}
