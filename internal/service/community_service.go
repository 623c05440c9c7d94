package service

import (
	"context"

	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
)

type CommunityService interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommunityPostInput, image *PetImage) (*domain.CommunityPost, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.CommunityPost], error)
	Update(ctx context.Context, authorID uuid.UUID, id uuid.UUID, input domain.UpdateCommunityPostInput) (*domain.CommunityPost, error)
	Delete(ctx context.Context, authorID uuid.UUID, id uuid.UUID) error
	Like(ctx context.Context, userID, postID uuid.UUID) error
	AddComment(ctx context.Context, userID, postID uuid.UUID, input domain.CreateCommentInput) (*domain.CommunityComment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.CommunityComment, error)
}

type communityService struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	media         MediaService
}

func NewCommunityService(communityRepo repository.CommunityRepository, userRepo repository.UserRepository, media MediaService) CommunityService {
	return &communityService{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		media:         media,
	}
}

func (s *communityService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommunityPostInput, image *PetImage) (*domain.CommunityPost, error) {
	if input.Content == "" {
		return nil, domain.NewValidationError("post content is required", "content")
	}

	post := &domain.CommunityPost{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  input.Content,
	}

	if image != nil {
		path, err := s.media.Upload(ctx, "community", image.FileName, image.Size, image.MimeType, image.Reader)
		if err != nil {
			return nil, err
		}
		post.ImagePath = &path
	}

	if err := s.communityRepo.Create(ctx, post); err != nil {
		if post.ImagePath != nil {
			_ = s.media.Remove(ctx, *post.ImagePath)
		}
		return nil, err
	}

	s.fillImageURL(post)
	return post, nil
}

func (s *communityService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.CommunityPost], error) {
	params.Validate()
	posts, total, err := s.communityRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CommunityPost]{}, err
	}
	authorIDs := make([]uuid.UUID, 0, len(posts))
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
	}
	authors, err := userSummariesByID(ctx, s.userRepo, authorIDs)
	if err != nil {
		return domain.PaginatedResponse[domain.CommunityPost]{}, err
	}

	for i := range posts {
		s.fillImageURL(&posts[i])
		posts[i].Author = authors[posts[i].AuthorID]
	}
	return domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total), nil
}

func (s *communityService) Update(ctx context.Context, authorID uuid.UUID, id uuid.UUID, input domain.UpdateCommunityPostInput) (*domain.CommunityPost, error) {
	post, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return nil, ErrNotAuthor
	}

	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := s.communityRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.fillImageURL(post)
	return post, nil
}

func (s *communityService) Delete(ctx context.Context, authorID uuid.UUID, id uuid.UUID) error {
	post, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return ErrNotAuthor
	}
	return s.communityRepo.Delete(ctx, id)
}

func (s *communityService) Like(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.communityRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.communityRepo.Like(ctx, postID, userID)
}

func (s *communityService) AddComment(ctx context.Context, userID, postID uuid.UUID, input domain.CreateCommentInput) (*domain.CommunityComment, error) {
	if input.Content == "" {
		return nil, domain.NewValidationError("comment content is required", "content")
	}

	post, err := s.communityRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &domain.CommunityComment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  userID,
		Content: input.Content,
	}
	if err := s.communityRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *communityService) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.CommunityComment, error) {
	comments, err := s.communityRepo.ListComments(ctx, postID)
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

func (s *communityService) fillImageURL(post *domain.CommunityPost) {
	if post.ImagePath != nil {
		post.ImageURL = s.media.PublicURL(*post.ImagePath)
	}
}
