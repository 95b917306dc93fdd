package ports

import (
	"context"
	"time"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// TokenRepository is the persistence boundary for refresh tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error

	// FindByToken resolves a record by its opaque token string and returns
	// domain.ErrInvalidToken when no row matches.
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// Rotate overwrites the token value and expiry of an existing row. The
	// row identity is preserved; no new row is created.
	Rotate(ctx context.Context, id uint, newToken string, expiresAt time.Time) error

	// DeleteByToken removes the row matching the token string and reports how
	// many rows were deleted (0 or 1).
	DeleteByToken(ctx context.Context, token string) (int64, error)

	// DeleteExpired removes every row with an expiry before cutoff and
	// reports the count.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
