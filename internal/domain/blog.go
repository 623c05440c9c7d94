package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID        uuid.UUID  `json:"id" db:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	ImagePath *string    `json:"image_path,omitempty" db:"image_path"`
	ImageURL  string     `json:"image_url,omitempty" db:"-"`
	LikeCount int        `json:"like_count" db:"like_count"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Author *UserSummary `json:"author,omitempty" db:"-"`
}

type BlogComment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	PostID    uuid.UUID  `json:"post_id" db:"post_id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

type CreateBlogPostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateBlogPostInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type CreateCommentInput struct {
	Content string `json:"content"`
}

func ValidateBlogPost(input CreateBlogPostInput) *ValidationError {
	var fields []string
	if input.Title == "" {
		fields = append(fields, "title")
	}
	if input.Content == "" {
		fields = append(fields, "content")
	}
	if len(fields) > 0 {
		return NewValidationError("invalid blog post", fields...)
	}
	return nil
}
