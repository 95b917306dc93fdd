package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// SubscriptionRepository implements ports.SubscriptionRepository on Postgres.
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	m := subscriptionFromDomain(sub)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	return m.toDomain(), nil
}

func (r *SubscriptionRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*domain.Subscription, error) {
	var m subscriptionModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return m.toDomain(), nil
}

func (r *SubscriptionRepository) FindByUserAndType(ctx context.Context, userID uint, target domain.SubscriptionTarget) ([]domain.Subscription, error) {
	var models []subscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ?", userID, string(target)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return toDomainSubscriptions(models), nil
}

func (r *SubscriptionRepository) FindPostSubscribers(ctx context.Context, postID uint) ([]domain.Subscription, error) {
	var models []subscriptionModel
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND post_id = ?", string(domain.SubscriptionTargetPost), postID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list post subscribers: %w", err)
	}
	return toDomainSubscriptions(models), nil
}

func (r *SubscriptionRepository) FindUserSubscribers(ctx context.Context, userTargetID uint) ([]domain.Subscription, error) {
	var models []subscriptionModel
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND user_target_id = ?", string(domain.SubscriptionTargetUser), userTargetID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list user subscribers: %w", err)
	}
	return toDomainSubscriptions(models), nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&subscriptionModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func toDomainSubscriptions(models []subscriptionModel) []domain.Subscription {
	subs := make([]domain.Subscription, 0, len(models))
	for i := range models {
		subs = append(subs, *models[i].toDomain())
	}
	return subs
}
