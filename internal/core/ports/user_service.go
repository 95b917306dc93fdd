package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// UpdateUserInput carries the mutable user fields. Nil fields are left
// unchanged; a non-nil Password is re-hashed before persisting.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// UserService exposes user directory operations.
type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, username string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
