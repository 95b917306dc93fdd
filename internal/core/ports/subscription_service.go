package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// CreateSubscriptionInput carries the fields required to subscribe. PostID is
// required for POST targets, UserTargetID for USER targets.
type CreateSubscriptionInput struct {
	TargetType   domain.SubscriptionTarget
	PostID       *uint
	UserTargetID *uint
}

// SubscriptionService exposes subscription management.
type SubscriptionService interface {
	Create(ctx context.Context, username string, input CreateSubscriptionInput) (*domain.Subscription, error)
	GetUserSubscriptions(ctx context.Context, username string) ([]domain.Subscription, error)
	GetPostSubscriptions(ctx context.Context, username string) ([]domain.Subscription, error)
	GetUserSubscribers(ctx context.Context, username string) ([]domain.Subscription, error)
	GetPostSubscribers(ctx context.Context, postID uint) ([]domain.Subscription, error)
	Delete(ctx context.Context, username string, id uint) error
}
