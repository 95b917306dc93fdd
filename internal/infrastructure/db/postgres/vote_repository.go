package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository on Postgres.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// targetScope narrows a query to the vote target's column.
func targetScope(q *gorm.DB, target domain.VoteTarget) *gorm.DB {
	switch target.Kind {
	case domain.VoteTargetPost:
		return q.Where("post_id = ?", target.ID)
	case domain.VoteTargetComment:
		return q.Where("comment_id = ?", target.ID)
	default:
		return q.Where("1 = 0")
	}
}

func (r *VoteRepository) FindByUserAndTarget(ctx context.Context, userID uint, target domain.VoteTarget) (*domain.Vote, error) {
	var m voteModel
	q := targetScope(r.db.WithContext(ctx).Where("user_id = ?", userID), target)
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return m.toDomain(), nil
}

func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	m := voteFromDomain(vote)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrInvalidVote
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	vote.ID = m.ID
	return nil
}

func (r *VoteRepository) UpdateValue(ctx context.Context, id uint, value int) error {
	res := r.db.WithContext(ctx).Model(&voteModel{}).Where("id = ?", id).Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("update vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidVote
	}
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&voteModel{}, id).Error; err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) SumForTarget(ctx context.Context, target domain.VoteTarget) (int, error) {
	var sum int
	q := targetScope(r.db.WithContext(ctx).Model(&voteModel{}), target)
	if err := q.Select("COALESCE(SUM(value), 0)").Scan(&sum).Error; err != nil {
		return 0, fmt.Errorf("sum votes: %w", err)
	}
	return sum, nil
}
