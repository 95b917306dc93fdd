package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

func newSubscriptionFixture(t *testing.T) (*SubscriptionService, *stubUserRepo, *stubPostRepo) {
	t.Helper()
	users := newStubUserRepo()
	posts := newStubPostRepo()
	svc := NewSubscriptionService(newStubSubscriptionRepo(), users, posts, zerolog.Nop())
	return svc, users, posts
}

func TestSubscriptionService_SubscribeToPost(t *testing.T) {
	svc, users, posts := newSubscriptionFixture(t)
	mustCreateUser(users, "alice", "alice@example.com", "x", domain.RoleUser)
	post, err := posts.Create(context.Background(), &domain.Post{Title: "t", Content: "c", AuthorID: 1})
	if err != nil {
		t.Fatalf("seeding post: %v", err)
	}

	sub, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType: domain.SubscriptionTargetPost,
		PostID:     &post.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sub.TargetType != domain.SubscriptionTargetPost || sub.PostID == nil || *sub.PostID != post.ID {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	subs, err := svc.GetPostSubscribers(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPostSubscribers returned error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(subs))
	}
}

func TestSubscriptionService_SubscribeToUser(t *testing.T) {
	svc, users, _ := newSubscriptionFixture(t)
	mustCreateUser(users, "alice", "alice@example.com", "x", domain.RoleUser)
	bob := mustCreateUser(users, "bob", "bob@example.com", "x", domain.RoleUser)

	if _, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType:   domain.SubscriptionTargetUser,
		UserTargetID: &bob.ID,
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	following, err := svc.GetUserSubscriptions(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserSubscriptions returned error: %v", err)
	}
	if len(following) != 1 {
		t.Fatalf("expected alice to follow 1 user, got %d", len(following))
	}

	followers, err := svc.GetUserSubscribers(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetUserSubscribers returned error: %v", err)
	}
	if len(followers) != 1 {
		t.Fatalf("expected bob to have 1 follower, got %d", len(followers))
	}
}

func TestSubscriptionService_SelfSubscription(t *testing.T) {
	svc, users, _ := newSubscriptionFixture(t)
	alice := mustCreateUser(users, "alice", "alice@example.com", "x", domain.RoleUser)

	if _, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType:   domain.SubscriptionTargetUser,
		UserTargetID: &alice.ID,
	}); !errors.Is(err, domain.ErrSelfSubscription) {
		t.Fatalf("expected ErrSelfSubscription, got %v", err)
	}
}

func TestSubscriptionService_MissingTarget(t *testing.T) {
	svc, users, _ := newSubscriptionFixture(t)
	mustCreateUser(users, "alice", "alice@example.com", "x", domain.RoleUser)

	missing := uint(99)
	if _, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType: domain.SubscriptionTargetPost,
		PostID:     &missing,
	}); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType:   domain.SubscriptionTargetUser,
		UserTargetID: &missing,
	}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType: domain.SubscriptionTargetPost,
	}); !errors.Is(err, domain.ErrInvalidSubscriptionTarget) {
		t.Fatalf("expected ErrInvalidSubscriptionTarget, got %v", err)
	}
}

func TestSubscriptionService_Delete(t *testing.T) {
	svc, users, posts := newSubscriptionFixture(t)
	mustCreateUser(users, "alice", "alice@example.com", "x", domain.RoleUser)
	mustCreateUser(users, "bob", "bob@example.com", "x", domain.RoleUser)
	post, err := posts.Create(context.Background(), &domain.Post{Title: "t", Content: "c", AuthorID: 1})
	if err != nil {
		t.Fatalf("seeding post: %v", err)
	}

	sub, err := svc.Create(context.Background(), "alice", ports.CreateSubscriptionInput{
		TargetType: domain.SubscriptionTargetPost,
		PostID:     &post.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Only the owner can delete the subscription.
	if err := svc.Delete(context.Background(), "bob", sub.ID); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound for foreign owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "alice", sub.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "alice", sub.ID); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound after delete, got %v", err)
	}
}
