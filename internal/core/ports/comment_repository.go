package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// CommentRepository is the persistence boundary for comments. Lookups return
// domain.ErrCommentNotFound when no row matches.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
	FindByPost(ctx context.Context, postID uint, page Page) ([]domain.Comment, int64, error)
	FindByAuthor(ctx context.Context, authorID uint, page Page) ([]domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id uint) error

	// UpdateRating overwrites the denormalized rating column.
	UpdateRating(ctx context.Context, id uint, rating int) error
}
