package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommunityPost is a short feed entry, distinct from the long-form blog.
type CommunityPost struct {
	ID        uuid.UUID  `json:"id" db:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	Content   string     `json:"content" db:"content"`
	ImagePath *string    `json:"image_path,omitempty" db:"image_path"`
	ImageURL  string     `json:"image_url,omitempty" db:"-"`
	LikeCount int        `json:"like_count" db:"like_count"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Author *UserSummary `json:"author,omitempty" db:"-"`
}

type CommunityComment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	PostID    uuid.UUID  `json:"post_id" db:"post_id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

type CreateCommunityPostInput struct {
	Content string `json:"content"`
}

type UpdateCommunityPostInput struct {
	Content *string `json:"content,omitempty"`
}
