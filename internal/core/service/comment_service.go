package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// CommentService exposes comment CRUD, nested replies, and voting.
type CommentService struct {
	comments   ports.CommentRepository
	posts      ports.PostRepository
	users      ports.UserRepository
	aggregator *VoteAggregator
	log        zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, aggregator *VoteAggregator, log zerolog.Logger) *CommentService {
	return &CommentService{
		comments:   comments,
		posts:      posts,
		users:      users,
		aggregator: aggregator,
		log:        log,
	}
}

func (s *CommentService) GetByPost(ctx context.Context, postID uint, page ports.Page) ([]domain.Comment, int64, error) {
	return s.comments.FindByPost(ctx, postID, page.Normalize())
}

func (s *CommentService) GetByUsername(ctx context.Context, username string, page ports.Page) ([]domain.Comment, int64, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return s.comments.FindByAuthor(ctx, user.ID, page.Normalize())
}

func (s *CommentService) GetByID(ctx context.Context, id uint) (*domain.Comment, error) {
	return s.comments.FindByID(ctx, id)
}

// Create adds a comment on a post, optionally as a nested reply when
// input.ParentID names an existing comment.
func (s *CommentService) Create(ctx context.Context, username string, input ports.CreateCommentInput) (*domain.Comment, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, input.PostID); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := s.comments.FindByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	comment, err := s.comments.Create(ctx, &domain.Comment{
		Content:   input.Content,
		PostID:    input.PostID,
		AuthorID:  user.ID,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("comment_id", comment.ID).Uint("post_id", input.PostID).Str("author", username).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, id uint, content string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	return s.comments.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("comment_id", id).Msg("comment deleted")
	return nil
}

// Vote applies the named user's ±1 on the comment and returns the recomputed
// rating.
func (s *CommentService) Vote(ctx context.Context, commentID uint, username string, value int) (*ports.VoteResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.aggregator.Vote(ctx, domain.CommentTarget(commentID), user.ID, value)
}
