package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// TokenRepository implements ports.TokenRepository on Postgres.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m := tokenFromDomain(token)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	token.ID = m.ID
	return nil
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return m.toDomain(), nil
}

// Rotate overwrites the token value and expiry of the existing row. The row
// keeps its identity, so the previous value is dead the moment this commits.
func (r *TokenRepository) Rotate(ctx context.Context, id uint, newToken string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&refreshTokenModel{}).Where("id = ?", id).Updates(map[string]any{
		"token":      newToken,
		"expires_at": expiresAt,
	})
	if res.Error != nil {
		return fmt.Errorf("rotate refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

func (r *TokenRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&refreshTokenModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete refresh token: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&refreshTokenModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
