package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/forumhub/forum-api/internal/core/domain"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest equals plaintext")
	}
	if !hasher.Verify("s3cret", digest) {
		t.Fatalf("expected digest to verify against original password")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatalf("expected verification to fail for wrong password")
	}
}

func TestPasswordHasher_SaltedDigests(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct digests for the same password")
	}
}

func TestPasswordHasher_TooLong(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	if _, err := hasher.Hash(strings.Repeat("a", maxPasswordBytes+1)); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := hasher.Hash(strings.Repeat("a", maxPasswordBytes)); err != nil {
		t.Fatalf("expected password at the limit to hash, got %v", err)
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	hasher := NewPasswordHasher(0)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", hasher.cost)
	}
	hasher = NewPasswordHasher(bcrypt.MaxCost + 1)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", hasher.cost)
	}
}
