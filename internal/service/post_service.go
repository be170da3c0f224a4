package service

import (
	"context"

	"venturelink/internal/models"
	"venturelink/internal/repository"
)

// AdminCheckFunc reports whether a user is a platform admin.
type AdminCheckFunc func(ctx context.Context, userID uint) (bool, error)

// PostService provides community post business logic.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  AdminCheckFunc
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, isAdmin AdminCheckFunc) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

const (
	maxPostTitleLen   = 200
	maxPostContentLen = 10000
)

// CreatePost validates and stores a new post authored by the actor.
func (s *PostService) CreatePost(ctx context.Context, actorID uint, title, content string) (*models.Post, error) {
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxPostTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post := &models.Post{
		UserID:  actorID,
		Title:   title,
		Content: content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns the newest posts.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// ListUserPosts returns a user's posts, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// UpdatePost edits a post; only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uint, title, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if title != "" {
		if len(title) > maxPostTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = title
	}
	if content != "" {
		if len(content) > maxPostContentLen {
			return nil, models.NewValidationError("Content too long (max 10000 characters)")
		}
		post.Content = content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post; the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		admin, err := s.isAdmin(ctx, actorID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}
	return s.postRepo.Delete(ctx, postID)
}
