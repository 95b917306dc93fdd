package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// SubscriptionRepository is the persistence boundary for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)

	// FindByIDAndUser resolves a subscription owned by the given user and
	// returns domain.ErrSubscriptionNotFound when no row matches.
	FindByIDAndUser(ctx context.Context, id, userID uint) (*domain.Subscription, error)

	FindByUserAndType(ctx context.Context, userID uint, target domain.SubscriptionTarget) ([]domain.Subscription, error)
	FindPostSubscribers(ctx context.Context, postID uint) ([]domain.Subscription, error)
	FindUserSubscribers(ctx context.Context, userTargetID uint) ([]domain.Subscription, error)
	Delete(ctx context.Context, id uint) error
}
