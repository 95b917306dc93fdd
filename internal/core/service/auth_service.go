package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// Entropy of the unusable password placeholder assigned to OAuth-created
// accounts. The value is hashed and discarded, so the account cannot be
// signed into with credentials until a password is set explicitly.
const oauthPlaceholderBytes = 16

// AuthService implements sign-up, sign-in, token refresh, logout and OAuth
// account linking on top of the token issuer and password hasher.
type AuthService struct {
	users    ports.UserRepository
	issuer   *TokenIssuer
	hasher   *PasswordHasher
	throttle ports.LoginThrottle // nil disables sign-in throttling
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, issuer *TokenIssuer, hasher *PasswordHasher, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		issuer:   issuer,
		hasher:   hasher,
		throttle: throttle,
		log:      log,
	}
}

// SignUp registers a new account and immediately signs it in, returning the
// token pair. The username is checked before the email so a request failing
// both reports the username conflict.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*ports.TokenPair, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if _, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", input.Username).Msg("user registered")
	return s.SignIn(ctx, input.Username, input.Password)
}

// SignIn verifies credentials and issues an access+refresh token pair.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, username)
		if err != nil {
			// Fail open: a throttle outage must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, username); err != nil {
				s.log.Warn().Err(err).Msg("failed to record sign-in failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset sign-in failures")
		}
	}

	return s.issuer.IssuePair(ctx, user)
}

// ValidateOAuthUser resolves an externally verified identity to a local
// account, creating one on first login, and issues a token pair. No password
// is ever verified on this path.
func (s *AuthService) ValidateOAuthUser(ctx context.Context, email, displayName string) (*ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.createOAuthUser(ctx, email, displayName)
	}
	if err != nil {
		return nil, err
	}
	return s.issuer.IssuePair(ctx, user)
}

func (s *AuthService) createOAuthUser(ctx context.Context, email, displayName string) (*domain.User, error) {
	username := displayName
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	placeholder, err := randomHex(oauthPlaceholderBytes)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(placeholder)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("email", email).Msg("oauth user created")
	return user, nil
}

// Refresh rotates the presented refresh token and returns the new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.issuer.Rotate(ctx, refreshToken)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.issuer.Revoke(ctx, refreshToken)
}
