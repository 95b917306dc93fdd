package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// PostRepository is the persistence boundary for posts. Lookups return
// domain.ErrPostNotFound when no row matches.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	FindPage(ctx context.Context, page Page) ([]domain.Post, int64, error)
	FindByAuthor(ctx context.Context, authorID uint, page Page) ([]domain.Post, int64, error)
	FindByAuthorAndID(ctx context.Context, authorID, id uint) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id uint) error

	// UpdateRating overwrites the denormalized rating column.
	UpdateRating(ctx context.Context, id uint, rating int) error
}
