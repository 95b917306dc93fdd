package ports

import "context"

// SignUpInput carries the fields required to register an account.
type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// TokenPair is the credential pair returned by every successful
// authentication: a short-lived signed access token and a long-lived opaque
// refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService orchestrates registration, sign-in, token rotation, logout and
// OAuth account linking.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*TokenPair, error)
	SignIn(ctx context.Context, username, password string) (*TokenPair, error)

	// ValidateOAuthUser resolves an externally authenticated identity to a
	// local account, creating one on first login. Never verifies a password.
	ValidateOAuthUser(ctx context.Context, email, displayName string) (*TokenPair, error)

	// Refresh exchanges a refresh token for a fresh pair; the presented
	// token is single-use.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error
}

// LoginThrottle limits consecutive failed sign-in attempts per username.
// Implementations may fail open: callers treat errors as "not throttled".
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
