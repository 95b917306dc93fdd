package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// PostService exposes post CRUD and delegates voting to the aggregator.
type PostService struct {
	posts      ports.PostRepository
	users      ports.UserRepository
	aggregator *VoteAggregator
	log        zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, aggregator *VoteAggregator, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, aggregator: aggregator, log: log}
}

func (s *PostService) GetAll(ctx context.Context, page ports.Page) ([]domain.Post, int64, error) {
	return s.posts.FindPage(ctx, page.Normalize())
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) GetByUsername(ctx context.Context, username string, page ports.Page) ([]domain.Post, int64, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return s.posts.FindByAuthor(ctx, user.ID, page.Normalize())
}

func (s *PostService) GetUserPost(ctx context.Context, username string, postID uint) (*domain.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.posts.FindByAuthorAndID(ctx, user.ID, postID)
}

func (s *PostService) Create(ctx context.Context, username string, input ports.CreatePostInput) (*domain.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("post_id", post.ID).Str("author", username).Msg("post created")
	return post, nil
}

// Update modifies a post owned by the named user. The username identifies
// the owner, not the caller; authorization happens at the route level.
func (s *PostService) Update(ctx context.Context, username string, id uint, input ports.UpdatePostInput) (*domain.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByAuthorAndID(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	post.UpdatedAt = time.Now().UTC()

	return s.posts.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, username string, id uint) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByAuthorAndID(ctx, user.ID, id)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	s.log.Info().Uint("post_id", id).Str("author", username).Msg("post deleted")
	return nil
}

// Vote applies the named user's ±1 on the post and returns the recomputed
// rating.
func (s *PostService) Vote(ctx context.Context, postID uint, username string, value int) (*ports.VoteResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.aggregator.Vote(ctx, domain.PostTarget(postID), user.ID, value)
}
