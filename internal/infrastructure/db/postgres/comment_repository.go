package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository on Postgres.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	m := commentFromDomain(comment)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var m commentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CommentRepository) FindByPost(ctx context.Context, postID uint, page ports.Page) ([]domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&commentModel{}).Where("post_id = ?", postID)
	return r.findPage(q, page)
}

func (r *CommentRepository) FindByAuthor(ctx context.Context, authorID uint, page ports.Page) ([]domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&commentModel{}).Where("author_id = ?", authorID)
	return r.findPage(q, page)
}

func (r *CommentRepository) findPage(q *gorm.DB, page ports.Page) ([]domain.Comment, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var models []commentModel
	if err := q.Order("created_at").Offset(page.Offset()).Limit(page.Limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, *models[i].toDomain())
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	m := commentFromDomain(comment)
	res := r.db.WithContext(ctx).Model(&commentModel{ID: m.ID}).Updates(map[string]any{
		"content":    m.Content,
		"updated_at": m.UpdatedAt,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCommentNotFound
	}
	return r.FindByID(ctx, m.ID)
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&commentModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) UpdateRating(ctx context.Context, id uint, rating int) error {
	res := r.db.WithContext(ctx).Model(&commentModel{}).Where("id = ?", id).Update("rating", rating)
	if res.Error != nil {
		return fmt.Errorf("update comment rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
