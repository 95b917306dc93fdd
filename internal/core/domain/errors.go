package domain

import "errors"

// Sentinel errors surfaced by core services. Infrastructure errors are
// wrapped with %w at the boundary; handlers and the central HTTP error
// handler match on these with errors.Is.
var (
	// Validation.
	ErrPasswordMismatch          = errors.New("passwords do not match")
	ErrPasswordTooLong           = errors.New("password exceeds maximum length")
	ErrInvalidRole               = errors.New("invalid role")
	ErrInvalidVote               = errors.New("vote value must be 1 or -1")
	ErrInvalidSubscriptionTarget = errors.New("invalid subscription target")
	ErrSelfSubscription          = errors.New("cannot subscribe to yourself")

	// Conflicts.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUserExists    = errors.New("user already exists")

	// Missing resources.
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// Authentication and authorization.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrTooManyAttempts    = errors.New("too many failed sign-in attempts")
	ErrForbidden          = errors.New("access forbidden")
)
