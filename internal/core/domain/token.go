package domain

import "time"

// RefreshToken is the persisted long-lived credential backing a session. The
// token string is an opaque random value; rotation overwrites Token and
// ExpiresAt in the same row, so a row holds at most one live value and the
// previous value becomes permanently invalid the moment rotation succeeds.
// Role is a snapshot of the user's role at issuance time.
type RefreshToken struct {
	ID        uint      `json:"id"`
	Token     string    `json:"-"`
	UserID    uint      `json:"user_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token's expiry has passed at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
