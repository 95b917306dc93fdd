package postgres

import (
	"time"

	"github.com/forumhub/forum-api/internal/core/domain"
)

// Row models. Each maps 1:1 to a domain entity; FKs cascade so deleting a
// user removes everything it owns.

type userModel struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:20;uniqueIndex;not null"`
	Email        string    `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:16;not null;default:USER"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type refreshTokenModel struct {
	ID        uint       `gorm:"primaryKey"`
	Token     string     `gorm:"size:128;uniqueIndex;not null"`
	UserID    uint       `gorm:"index;not null"`
	User      *userModel `gorm:"constraint:OnDelete:CASCADE"`
	Role      string     `gorm:"size:16;not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

type postModel struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"size:120;not null"`
	Content   string     `gorm:"type:text;not null"`
	AuthorID  uint       `gorm:"index;not null"`
	Author    *userModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Rating    int        `gorm:"not null;default:0"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (postModel) TableName() string { return "posts" }

type commentModel struct {
	ID        uint          `gorm:"primaryKey"`
	Content   string        `gorm:"type:text;not null"`
	PostID    uint          `gorm:"index;not null"`
	Post      *postModel    `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint          `gorm:"index;not null"`
	Author    *userModel    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	ParentID  *uint         `gorm:"index"`
	Parent    *commentModel `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Rating    int           `gorm:"not null;default:0"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null"`
}

func (commentModel) TableName() string { return "comments" }

// voteModel enforces one vote per (user, post) and per (user, comment) with
// partial-friendly composite unique indexes; Postgres treats NULLs as
// distinct, so the nullable columns never collide across target kinds.
type voteModel struct {
	ID        uint          `gorm:"primaryKey"`
	UserID    uint          `gorm:"not null;uniqueIndex:uq_votes_user_post;uniqueIndex:uq_votes_user_comment"`
	User      *userModel    `gorm:"constraint:OnDelete:CASCADE"`
	PostID    *uint         `gorm:"uniqueIndex:uq_votes_user_post"`
	Post      *postModel    `gorm:"constraint:OnDelete:CASCADE"`
	CommentID *uint         `gorm:"uniqueIndex:uq_votes_user_comment"`
	Comment   *commentModel `gorm:"constraint:OnDelete:CASCADE"`
	Value     int           `gorm:"not null"`
}

func (voteModel) TableName() string { return "votes" }

type subscriptionModel struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"index;not null"`
	User         *userModel `gorm:"constraint:OnDelete:CASCADE"`
	TargetType   string     `gorm:"size:8;not null"`
	PostID       *uint      `gorm:"index"`
	Post         *postModel `gorm:"constraint:OnDelete:CASCADE"`
	UserTargetID *uint      `gorm:"index"`
	UserTarget   *userModel `gorm:"foreignKey:UserTargetID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"not null"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

// --- Domain conversions ---

func userFromDomain(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func tokenFromDomain(t *domain.RefreshToken) refreshTokenModel {
	return refreshTokenModel{
		ID:        t.ID,
		Token:     t.Token,
		UserID:    t.UserID,
		Role:      string(t.Role),
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *refreshTokenModel) toDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        m.ID,
		Token:     m.Token,
		UserID:    m.UserID,
		Role:      domain.Role(m.Role),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func postFromDomain(p *domain.Post) postModel {
	return postModel{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func commentFromDomain(c *domain.Comment) commentModel {
	return commentModel{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *commentModel) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        m.ID,
		Content:   m.Content,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func voteFromDomain(v *domain.Vote) voteModel {
	return voteModel{
		ID:        v.ID,
		UserID:    v.UserID,
		PostID:    v.PostID,
		CommentID: v.CommentID,
		Value:     v.Value,
	}
}

func (m *voteModel) toDomain() *domain.Vote {
	return &domain.Vote{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		CommentID: m.CommentID,
		Value:     m.Value,
	}
}

func subscriptionFromDomain(s *domain.Subscription) subscriptionModel {
	return subscriptionModel{
		ID:           s.ID,
		UserID:       s.UserID,
		TargetType:   string(s.TargetType),
		PostID:       s.PostID,
		UserTargetID: s.UserTargetID,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *subscriptionModel) toDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:           m.ID,
		UserID:       m.UserID,
		TargetType:   domain.SubscriptionTarget(m.TargetType),
		PostID:       m.PostID,
		UserTargetID: m.UserTargetID,
		CreatedAt:    m.CreatedAt,
	}
}
