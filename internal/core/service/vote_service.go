package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// User-visible messages describing what happened to the caller's vote.
const (
	voteAdded   = "Vote added"
	voteRemoved = "Vote removed"
	voteUpdated = "Vote updated"
)

// VoteAggregator maintains the one-vote-per-(user, target) invariant and
// keeps the target's denormalized rating equal to the sum of its votes.
type VoteAggregator struct {
	votes    ports.VoteRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewVoteAggregator(votes ports.VoteRepository, posts ports.PostRepository, comments ports.CommentRepository, log zerolog.Logger) *VoteAggregator {
	return &VoteAggregator{
		votes:    votes,
		posts:    posts,
		comments: comments,
		log:      log,
	}
}

// Vote applies a ±1 vote by the user on the target:
//
//   - no existing vote: create it ("Vote added")
//   - existing vote with the same value: delete it ("Vote removed")
//   - existing vote with the other value: flip it in place ("Vote updated")
//
// The target's rating is then recomputed as the full sum over its votes and
// written back before returning.
func (a *VoteAggregator) Vote(ctx context.Context, target domain.VoteTarget, userID uint, value int) (*ports.VoteResult, error) {
	if value != domain.VoteUp && value != domain.VoteDown {
		return nil, domain.ErrInvalidVote
	}

	existing, err := a.votes.FindByUserAndTarget(ctx, userID, target)
	if err != nil {
		return nil, fmt.Errorf("find vote: %w", err)
	}

	var message string
	switch {
	case existing == nil:
		vote := &domain.Vote{UserID: userID, Value: value}
		switch target.Kind {
		case domain.VoteTargetPost:
			vote.PostID = &target.ID
		case domain.VoteTargetComment:
			vote.CommentID = &target.ID
		}
		if err := a.votes.Create(ctx, vote); err != nil {
			return nil, fmt.Errorf("create vote: %w", err)
		}
		message = voteAdded

	case existing.Value == value:
		if err := a.votes.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("delete vote: %w", err)
		}
		message = voteRemoved

	default:
		if err := a.votes.UpdateValue(ctx, existing.ID, value); err != nil {
			return nil, fmt.Errorf("update vote: %w", err)
		}
		message = voteUpdated
	}

	rating, err := a.votes.SumForTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("sum votes: %w", err)
	}

	switch target.Kind {
	case domain.VoteTargetPost:
		err = a.posts.UpdateRating(ctx, target.ID, rating)
	case domain.VoteTargetComment:
		err = a.comments.UpdateRating(ctx, target.ID, rating)
	}
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	a.log.Debug().
		Str("target", string(target.Kind)).
		Uint("target_id", target.ID).
		Uint("user_id", userID).
		Int("rating", rating).
		Msg(message)

	return &ports.VoteResult{Rating: rating, Message: message}, nil
}
