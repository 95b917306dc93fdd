package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// VoteRepository is the persistence boundary for votes.
type VoteRepository interface {
	// FindByUserAndTarget returns the user's vote on the target, or
	// (nil, nil) when the user has not voted on it.
	FindByUserAndTarget(ctx context.Context, userID uint, target domain.VoteTarget) (*domain.Vote, error)

	Create(ctx context.Context, vote *domain.Vote) error
	UpdateValue(ctx context.Context, id uint, value int) error
	Delete(ctx context.Context, id uint) error

	// SumForTarget returns the sum of all vote values for the target. An
	// unvoted target sums to zero.
	SumForTarget(ctx context.Context, target domain.VoteTarget) (int, error)
}
