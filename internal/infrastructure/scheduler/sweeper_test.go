package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
)

type stubTokenRepo struct {
	expired int64
	err     error
	calls   int
}

func (r *stubTokenRepo) Create(_ context.Context, _ *domain.RefreshToken) error { return nil }

func (r *stubTokenRepo) FindByToken(_ context.Context, _ string) (*domain.RefreshToken, error) {
	return nil, domain.ErrInvalidToken
}

func (r *stubTokenRepo) Rotate(_ context.Context, _ uint, _ string, _ time.Time) error { return nil }

func (r *stubTokenRepo) DeleteByToken(_ context.Context, _ string) (int64, error) { return 0, nil }

func (r *stubTokenRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	r.calls++
	return r.expired, r.err
}

func TestTokenSweeper_Sweep(t *testing.T) {
	repo := &stubTokenRepo{expired: 3}
	sweeper := NewTokenSweeper(repo, 0, zerolog.Nop())

	deleted, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}
	if repo.calls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.calls)
	}
}

func TestTokenSweeper_SweepError(t *testing.T) {
	repo := &stubTokenRepo{err: errors.New("boom")}
	sweeper := NewTokenSweeper(repo, 0, zerolog.Nop())

	if _, err := sweeper.Sweep(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNextRun(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "before the hour fires same day",
			now:  time.Date(2024, 3, 10, 1, 30, 0, 0, loc),
			hour: 3,
			want: time.Date(2024, 3, 10, 3, 0, 0, 0, loc),
		},
		{
			name: "after the hour fires next day",
			now:  time.Date(2024, 3, 10, 4, 0, 1, 0, loc),
			hour: 3,
			want: time.Date(2024, 3, 11, 3, 0, 0, 0, loc),
		},
		{
			name: "exactly on the hour fires next day",
			now:  time.Date(2024, 3, 10, 3, 0, 0, 0, loc),
			hour: 3,
			want: time.Date(2024, 3, 11, 3, 0, 0, 0, loc),
		},
		{
			name: "midnight schedule",
			now:  time.Date(2024, 3, 10, 23, 59, 0, 0, loc),
			hour: 0,
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRun(tt.now, tt.hour)
			if !got.Equal(tt.want) {
				t.Fatalf("nextRun(%v, %d) = %v, want %v", tt.now, tt.hour, got, tt.want)
			}
		})
	}
}

func TestNewTokenSweeper_HourFallback(t *testing.T) {
	sweeper := NewTokenSweeper(&stubTokenRepo{}, 24, zerolog.Nop())
	if sweeper.hour != 0 {
		t.Fatalf("expected fallback to hour 0, got %d", sweeper.hour)
	}
	sweeper = NewTokenSweeper(&stubTokenRepo{}, -1, zerolog.Nop())
	if sweeper.hour != 0 {
		t.Fatalf("expected fallback to hour 0, got %d", sweeper.hour)
	}
}

func TestTokenSweeper_StartStopsOnCancel(t *testing.T) {
	repo := &stubTokenRepo{}
	sweeper := NewTokenSweeper(repo, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	cancel()

	// The loop only arms a timer for the next daily tick, so no sweep may
	// have run; this just ensures cancellation does not wedge or panic.
	time.Sleep(10 * time.Millisecond)
}
