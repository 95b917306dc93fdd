package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// SubscriptionService manages subscriptions to posts and users.
type SubscriptionService struct {
	subs  ports.SubscriptionRepository
	users ports.UserRepository
	posts ports.PostRepository
	log   zerolog.Logger
}

func NewSubscriptionService(subs ports.SubscriptionRepository, users ports.UserRepository, posts ports.PostRepository, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, posts: posts, log: log}
}

// Create subscribes the named user to a post or another user. The target
// must exist, and users cannot subscribe to themselves.
func (s *SubscriptionService) Create(ctx context.Context, username string, input ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	switch input.TargetType {
	case domain.SubscriptionTargetPost:
		if input.PostID == nil {
			return nil, domain.ErrInvalidSubscriptionTarget
		}
		if _, err := s.posts.FindByID(ctx, *input.PostID); err != nil {
			return nil, err
		}
	case domain.SubscriptionTargetUser:
		if input.UserTargetID == nil {
			return nil, domain.ErrInvalidSubscriptionTarget
		}
		target, err := s.users.FindByID(ctx, *input.UserTargetID)
		if err != nil {
			return nil, err
		}
		if target.ID == user.ID {
			return nil, domain.ErrSelfSubscription
		}
	default:
		return nil, domain.ErrInvalidSubscriptionTarget
	}

	sub, err := s.subs.Create(ctx, &domain.Subscription{
		UserID:       user.ID,
		TargetType:   input.TargetType,
		PostID:       input.PostID,
		UserTargetID: input.UserTargetID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("target_type", string(input.TargetType)).Msg("subscription created")
	return sub, nil
}

// GetUserSubscriptions lists the users the named user follows.
func (s *SubscriptionService) GetUserSubscriptions(ctx context.Context, username string) ([]domain.Subscription, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.subs.FindByUserAndType(ctx, user.ID, domain.SubscriptionTargetUser)
}

// GetPostSubscriptions lists the posts the named user follows.
func (s *SubscriptionService) GetPostSubscriptions(ctx context.Context, username string) ([]domain.Subscription, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.subs.FindByUserAndType(ctx, user.ID, domain.SubscriptionTargetPost)
}

// GetUserSubscribers lists the subscriptions following the named user.
func (s *SubscriptionService) GetUserSubscribers(ctx context.Context, username string) ([]domain.Subscription, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.subs.FindUserSubscribers(ctx, user.ID)
}

// GetPostSubscribers lists the subscriptions following the given post.
func (s *SubscriptionService) GetPostSubscribers(ctx context.Context, postID uint) ([]domain.Subscription, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.subs.FindPostSubscribers(ctx, postID)
}

// Delete removes a subscription owned by the named user.
func (s *SubscriptionService) Delete(ctx context.Context, username string, id uint) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	sub, err := s.subs.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return err
	}
	return s.subs.Delete(ctx, sub.ID)
}
