package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// PostRepository implements ports.PostRepository on Postgres.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	m := postFromDomain(post)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepository) FindPage(ctx context.Context, page ports.Page) ([]domain.Post, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&postModel{}), page)
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID uint, page ports.Page) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&postModel{}).Where("author_id = ?", authorID)
	return r.findPage(ctx, q, page)
}

func (r *PostRepository) findPage(_ context.Context, q *gorm.DB, page ports.Page) ([]domain.Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	var models []postModel
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(models))
	for i := range models {
		posts = append(posts, *models[i].toDomain())
	}
	return posts, total, nil
}

func (r *PostRepository) FindByAuthorAndID(ctx context.Context, authorID, id uint) (*domain.Post, error) {
	var m postModel
	err := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post by author: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	m := postFromDomain(post)
	res := r.db.WithContext(ctx).Model(&postModel{ID: m.ID}).Updates(map[string]any{
		"title":      m.Title,
		"content":    m.Content,
		"updated_at": m.UpdatedAt,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindByID(ctx, m.ID)
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&postModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) UpdateRating(ctx context.Context, id uint, rating int) error {
	res := r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", id).Update("rating", rating)
	if res.Error != nil {
		return fmt.Errorf("update post rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
