package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 14 * 24 * time.Hour

	// Raw entropy of an opaque refresh token; hex-encoded on the wire.
	refreshTokenBytes = 64
)

// AccessClaims are the identity claims carried by a signed access token.
type AccessClaims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints HS256-signed access tokens and opaque store-backed
// refresh tokens, and drives the refresh token lifecycle: issue, rotate,
// revoke.
type TokenIssuer struct {
	tokens     ports.TokenRepository
	users      ports.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewTokenIssuer(tokens ports.TokenRepository, users ports.UserRepository, secret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		tokens:     tokens,
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// IssueAccessToken signs a short-lived JWT carrying the user's identity and
// role.
func (t *TokenIssuer) IssueAccessToken(username string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken mints a fresh opaque token for the user and persists it
// with the configured expiry and a snapshot of the user's role.
func (t *TokenIssuer) IssueRefreshToken(ctx context.Context, userID uint, role domain.Role) (string, error) {
	value, err := randomHex(refreshTokenBytes)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := &domain.RefreshToken{
		Token:     value,
		UserID:    userID,
		Role:      role,
		ExpiresAt: now.Add(t.refreshTTL),
		CreatedAt: now,
	}
	if err := t.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}
	return value, nil
}

// IssuePair mints an access token and a persisted refresh token for the user.
func (t *TokenIssuer) IssuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := t.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := t.IssueRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate exchanges a refresh token for a fresh pair. The presented value
// becomes permanently invalid the instant rotation succeeds: the stored row
// is overwritten in place with a new token and expiry, so there is no reuse
// window. Absent or expired tokens fail with domain.ErrInvalidToken; a token
// whose owning user has vanished fails with domain.ErrUserNotFound.
func (t *TokenIssuer) Rotate(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	record, err := t.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if record.Expired(now) {
		return nil, domain.ErrInvalidToken
	}

	user, err := t.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}

	access, err := t.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	next, err := randomHex(refreshTokenBytes)
	if err != nil {
		return nil, err
	}
	if err := t.tokens.Rotate(ctx, record.ID, next, now.Add(t.refreshTTL)); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	t.log.Debug().Uint("user_id", user.ID).Msg("refresh token rotated")
	return &ports.TokenPair{AccessToken: access, RefreshToken: next}, nil
}

// Revoke deletes the stored refresh token. An unknown token reports
// domain.ErrInvalidToken; never-issued and already-revoked are
// indistinguishable.
func (t *TokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	deleted, err := t.tokens.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if deleted == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
