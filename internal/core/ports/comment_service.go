package ports

import (
	"context"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// CreateCommentInput carries the fields required to create a comment. A
// non-nil ParentID makes the comment a nested reply.
type CreateCommentInput struct {
	Content  string
	PostID   uint
	ParentID *uint
}

// CommentService exposes comment CRUD and voting.
type CommentService interface {
	GetByPost(ctx context.Context, postID uint, page Page) ([]domain.Comment, int64, error)
	GetByUsername(ctx context.Context, username string, page Page) ([]domain.Comment, int64, error)
	GetByID(ctx context.Context, id uint) (*domain.Comment, error)
	Create(ctx context.Context, username string, input CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, id uint, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id uint) error
	Vote(ctx context.Context, commentID uint, username string, value int) (*VoteResult, error)
}
