package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// CreatePostInput carries the fields required to create a post.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput carries the mutable post fields. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// VoteResult reports the outcome of a vote mutation: the recomputed rating
// and what happened to the caller's vote.
type VoteResult struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// PostService exposes post CRUD and voting.
type PostService interface {
	GetAll(ctx context.Context, page Page) ([]domain.Post, int64, error)
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	GetByUsername(ctx context.Context, username string, page Page) ([]domain.Post, int64, error)
	GetUserPost(ctx context.Context, username string, postID uint) (*domain.Post, error)
	Create(ctx context.Context, username string, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, username string, id uint, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, username string, id uint) error
	Vote(ctx context.Context, postID uint, username string, value int) (*VoteResult, error)
}
