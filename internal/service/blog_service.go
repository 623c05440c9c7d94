package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAuthor    = errors.New("only the author may modify this post")
)

type BlogService interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateBlogPostInput, image *PetImage) (*domain.BlogPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.BlogPost], error)
	Update(ctx context.Context, authorID uuid.UUID, id uuid.UUID, input domain.UpdateBlogPostInput) (*domain.BlogPost, error)
	Delete(ctx context.Context, authorID uuid.UUID, id uuid.UUID) error
	Like(ctx context.Context, userID, postID uuid.UUID) error
	Unlike(ctx context.Context, userID, postID uuid.UUID) error
	AddComment(ctx context.Context, userID, postID uuid.UUID, input domain.CreateCommentInput) (*domain.BlogComment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error)
}

type blogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
	media    MediaService
}

func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository, media MediaService) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		userRepo: userRepo,
		media:    media,
	}
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateBlogPostInput, image *PetImage) (*domain.BlogPost, error) {
	if verr := domain.ValidateBlogPost(input); verr != nil {
		return nil, verr
	}

	post := &domain.BlogPost{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
	}

	if image != nil {
		path, err := s.media.Upload(ctx, "blog", image.FileName, image.Size, image.MimeType, image.Reader)
		if err != nil {
			return nil, err
		}
		post.ImagePath = &path
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		if post.ImagePath != nil {
			_ = s.media.Remove(ctx, *post.ImagePath)
		}
		return nil, err
	}

	s.fillImageURL(post)
	return post, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	s.fillImageURL(post)

	authors, err := userSummariesByID(ctx, s.userRepo, []uuid.UUID{post.AuthorID})
	if err != nil {
		return nil, err
	}
	post.Author = authors[post.AuthorID]
	return post, nil
}

func (s *blogService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.BlogPost], error) {
	params.Validate()
	posts, total, err := s.blogRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BlogPost]{}, err
	}

	authorIDs := make([]uuid.UUID, 0, len(posts))
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
	}
	authors, err := userSummariesByID(ctx, s.userRepo, authorIDs)
	if err != nil {
		return domain.PaginatedResponse[domain.BlogPost]{}, err
	}

	for i := range posts {
		s.fillImageURL(&posts[i])
		posts[i].Author = authors[posts[i].AuthorID]
	}
	return domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total), nil
}

func (s *blogService) Update(ctx context.Context, authorID uuid.UUID, id uuid.UUID, input domain.UpdateBlogPostInput) (*domain.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return nil, ErrNotAuthor
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.fillImageURL(post)
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, authorID uuid.UUID, id uuid.UUID) error {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return ErrNotAuthor
	}
	return s.blogRepo.Delete(ctx, id)
}

func (s *blogService) Like(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.blogRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.blogRepo.Like(ctx, postID, userID)
}

func (s *blogService) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	return s.blogRepo.Unlike(ctx, postID, userID)
}

func (s *blogService) AddComment(ctx context.Context, userID, postID uuid.UUID, input domain.CreateCommentInput) (*domain.BlogComment, error) {
	if input.Content == "" {
		return nil, domain.NewValidationError("comment content is required", "content")
	}

	post, err := s.blogRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &domain.BlogComment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  userID,
		Content: input.Content,
	}
	if err := s.blogRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *blogService) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error) {
	comments, err := s.blogRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(comments))
	for i := range comments {
		userIDs = append(userIDs, comments[i].UserID)
	}
	users, err := userSummariesByID(ctx, s.userRepo, userIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].User = users[comments[i].UserID]
	}
	return comments, nil
}

func (s *blogService) fillImageURL(post *domain.BlogPost) {
	if post.ImagePath != nil {
		post.ImageURL = s.media.PublicURL(*post.ImagePath)
	}
}
