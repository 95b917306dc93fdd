// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/api/metrics"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// TokenSweeper deletes expired refresh tokens once a day at a fixed
// wall-clock hour. A failed sweep is logged and retried at the next tick;
// there is no catch-up for missed runs.
type TokenSweeper struct {
	tokens ports.TokenRepository
	hour   int
	log    zerolog.Logger
}

// NewTokenSweeper creates a sweeper firing daily at the given local hour
// (0-23). Out-of-range hours fall back to midnight.
func NewTokenSweeper(tokens ports.TokenRepository, hour int, log zerolog.Logger) *TokenSweeper {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return &TokenSweeper{tokens: tokens, hour: hour, log: log}
}

// Start launches the sweep loop on a goroutine. The loop stops when ctx is
// cancelled.
func (s *TokenSweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *TokenSweeper) run(ctx context.Context) {
	for {
		next := nextRun(time.Now(), s.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error().Err(err).Msg("token sweep failed")
			}
		}
	}
}

// Sweep deletes every refresh token whose expiry has passed and reports the
// count.
func (s *TokenSweeper) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.tokens.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	metrics.TokensSweptTotal.Add(float64(deleted))
	s.log.Info().Int64("deleted", deleted).Msg("expired refresh tokens swept")
	return deleted, nil
}

// nextRun returns the first instant strictly after now whose local wall-clock
// hour equals hour.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
