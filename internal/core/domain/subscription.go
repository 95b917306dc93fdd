package domain

import "time"

// SubscriptionTarget discriminates what a subscription follows.
type SubscriptionTarget string

const (
	SubscriptionTargetPost SubscriptionTarget = "POST"
	SubscriptionTargetUser SubscriptionTarget = "USER"
)

// Subscription follows either a post or another user. PostID is set for POST
// targets, UserTargetID for USER targets.
type Subscription struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"user_id"`
	TargetType   SubscriptionTarget `json:"target_type"`
	PostID       *uint              `json:"post_id,omitempty"`
	UserTargetID *uint              `json:"user_target_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}
