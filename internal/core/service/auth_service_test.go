package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func newTestAuthService(users *stubUserRepo, tokens *stubTokenRepo, throttle ports.LoginThrottle) *AuthService {
	log := zerolog.Nop()
	issuer := NewTokenIssuer(tokens, users, "test-secret", time.Minute, time.Hour, log)
	hasher := NewPasswordHasher(bcrypt.MinCost)
	return NewAuthService(users, issuer, hasher, throttle, log)
}

func signUpInput(username string) ports.SignUpInput {
	return ports.SignUpInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "pass123",
		ConfirmPassword: "pass123",
	}
}

func TestAuthService_SignUp_ThenSignIn(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), nil)

	pair, err := svc.SignUp(context.Background(), signUpInput("alice"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected non-empty token pair, got %+v", pair)
	}

	user, err := users.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}

	again, err := svc.SignIn(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if again.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a fresh refresh token per sign-in")
	}
}

func TestAuthService_SignUp_PasswordMismatch(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubTokenRepo(), nil)

	input := signUpInput("alice")
	input.ConfirmPassword = "other"
	if _, err := svc.SignUp(context.Background(), input); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), nil)

	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); err != nil {
		t.Fatalf("first SignUp returned error: %v", err)
	}

	// Same username and same email: the username conflict wins.
	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	input := signUpInput("bob")
	input.Email = "alice@example.com"
	if _, err := svc.SignUp(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubTokenRepo(), nil)

	if _, err := svc.SignIn(context.Background(), "ghost", "pass123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newTestAuthService(users, newStubTokenRepo(), throttle)

	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_SignIn_Throttled(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), &stubThrottle{blocked: true})

	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "alice", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_SignIn_ResetsFailuresOnSuccess(t *testing.T) {
	users := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newTestAuthService(users, newStubTokenRepo(), throttle)

	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "alice", "pass123"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if throttle.resets == 0 {
		t.Fatalf("expected throttle reset after successful sign-in")
	}
}

func TestAuthService_ValidateOAuthUser_CreatesAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), nil)

	pair, err := svc.ValidateOAuthUser(context.Background(), "carol@example.com", "Carol")
	if err != nil {
		t.Fatalf("ValidateOAuthUser returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected non-empty token pair, got %+v", pair)
	}

	user, err := users.FindByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("oauth user not persisted: %v", err)
	}
	if user.Username != "Carol" {
		t.Fatalf("expected username Carol, got %q", user.Username)
	}

	// The placeholder password is unusable for credential sign-in.
	if _, err := svc.SignIn(context.Background(), "Carol", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateOAuthUser_UsernameFromEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), nil)

	if _, err := svc.ValidateOAuthUser(context.Background(), "dave@example.com", ""); err != nil {
		t.Fatalf("ValidateOAuthUser returned error: %v", err)
	}
	if _, err := users.FindByUsername(context.Background(), "dave"); err != nil {
		t.Fatalf("expected username derived from email local part: %v", err)
	}
}

func TestAuthService_ValidateOAuthUser_ExistingAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubTokenRepo(), nil)

	if _, err := svc.SignUp(context.Background(), signUpInput("alice")); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if _, err := svc.ValidateOAuthUser(context.Background(), "alice@example.com", "Someone Else"); err != nil {
		t.Fatalf("ValidateOAuthUser returned error: %v", err)
	}

	all, _ := users.FindAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected existing account to be reused, got %d users", len(all))
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	users := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := newTestAuthService(users, tokens, nil)

	pair, err := svc.SignUp(context.Background(), signUpInput("alice"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected rotation to replace the refresh token")
	}

	if err := svc.Logout(context.Background(), next.RefreshToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), next.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthService_Logout_UnknownToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubTokenRepo(), nil)

	if err := svc.Logout(context.Background(), "never-issued"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
