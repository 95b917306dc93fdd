package service

import (
	"context"
	"sort"
	"time"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// In-memory stub repositories. Each test builds its own so there is no
// shared state between cases.

type stubUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// mustCreateUser seeds a user directly, bypassing the service layer.
func mustCreateUser(r *stubUserRepo, username, email, passwordHash string, role domain.Role) *domain.User {
	u, err := r.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		panic(err)
	}
	return u
}

type stubTokenRepo struct {
	tokens map[uint]*domain.RefreshToken
	nextID uint
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[uint]*domain.RefreshToken)}
}

func cloneToken(t *domain.RefreshToken) *domain.RefreshToken {
	clone := *t
	return &clone
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.nextID++
	copy := cloneToken(token)
	copy.ID = r.nextID
	r.tokens[copy.ID] = copy
	token.ID = copy.ID
	return nil
}

func (r *stubTokenRepo) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			return cloneToken(t), nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (r *stubTokenRepo) Rotate(_ context.Context, id uint, newToken string, expiresAt time.Time) error {
	t, ok := r.tokens[id]
	if !ok {
		return domain.ErrInvalidToken
	}
	t.Token = newToken
	t.ExpiresAt = expiresAt
	return nil
}

func (r *stubTokenRepo) DeleteByToken(_ context.Context, token string) (int64, error) {
	for id, t := range r.tokens {
		if t.Token == token {
			delete(r.tokens, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubTokenRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(r.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

type stubVoteRepo struct {
	votes  map[uint]*domain.Vote
	nextID uint
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{votes: make(map[uint]*domain.Vote)}
}

func voteMatches(v *domain.Vote, target domain.VoteTarget) bool {
	switch target.Kind {
	case domain.VoteTargetPost:
		return v.PostID != nil && *v.PostID == target.ID
	case domain.VoteTargetComment:
		return v.CommentID != nil && *v.CommentID == target.ID
	}
	return false
}

func (r *stubVoteRepo) FindByUserAndTarget(_ context.Context, userID uint, target domain.VoteTarget) (*domain.Vote, error) {
	for _, v := range r.votes {
		if v.UserID == userID && voteMatches(v, target) {
			clone := *v
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubVoteRepo) Create(_ context.Context, vote *domain.Vote) error {
	r.nextID++
	copy := *vote
	copy.ID = r.nextID
	r.votes[copy.ID] = &copy
	return nil
}

func (r *stubVoteRepo) UpdateValue(_ context.Context, id uint, value int) error {
	v, ok := r.votes[id]
	if !ok {
		return domain.ErrInvalidVote
	}
	v.Value = value
	return nil
}

func (r *stubVoteRepo) Delete(_ context.Context, id uint) error {
	delete(r.votes, id)
	return nil
}

func (r *stubVoteRepo) SumForTarget(_ context.Context, target domain.VoteTarget) (int, error) {
	sum := 0
	for _, v := range r.votes {
		if voteMatches(v, target) {
			sum += v.Value
		}
	}
	return sum, nil
}

type stubPostRepo struct {
	posts  map[uint]*domain.Post
	nextID uint
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[uint]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.nextID++
	copy := *post
	copy.ID = r.nextID
	r.posts[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id uint) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) sorted() []domain.Post {
	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate[T any](items []T, page ports.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (r *stubPostRepo) FindPage(_ context.Context, page ports.Page) ([]domain.Post, int64, error) {
	all := r.sorted()
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubPostRepo) FindByAuthor(_ context.Context, authorID uint, page ports.Page) ([]domain.Post, int64, error) {
	var all []domain.Post
	for _, p := range r.sorted() {
		if p.AuthorID == authorID {
			all = append(all, p)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubPostRepo) FindByAuthorAndID(_ context.Context, authorID, id uint) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok && p.AuthorID == authorID {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[post.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	copy := *post
	r.posts[post.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) UpdateRating(_ context.Context, id uint, rating int) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Rating = rating
	return nil
}

type stubCommentRepo struct {
	comments map[uint]*domain.Comment
	nextID   uint
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[uint]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	copy := *comment
	copy.ID = r.nextID
	r.comments[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id uint) (*domain.Comment, error) {
	if c, ok := r.comments[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) sorted() []domain.Comment {
	out := make([]domain.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubCommentRepo) FindByPost(_ context.Context, postID uint, page ports.Page) ([]domain.Comment, int64, error) {
	var all []domain.Comment
	for _, c := range r.sorted() {
		if c.PostID == postID {
			all = append(all, c)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubCommentRepo) FindByAuthor(_ context.Context, authorID uint, page ports.Page) ([]domain.Comment, int64, error) {
	var all []domain.Comment
	for _, c := range r.sorted() {
		if c.AuthorID == authorID {
			all = append(all, c)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if _, ok := r.comments[comment.ID]; !ok {
		return nil, domain.ErrCommentNotFound
	}
	copy := *comment
	r.comments[comment.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) UpdateRating(_ context.Context, id uint, rating int) error {
	c, ok := r.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Rating = rating
	return nil
}

type stubSubscriptionRepo struct {
	subs   map[uint]*domain.Subscription
	nextID uint
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{subs: make(map[uint]*domain.Subscription)}
}

func (r *stubSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	r.nextID++
	copy := *sub
	copy.ID = r.nextID
	r.subs[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubSubscriptionRepo) FindByIDAndUser(_ context.Context, id, userID uint) (*domain.Subscription, error) {
	if s, ok := r.subs[id]; ok && s.UserID == userID {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrSubscriptionNotFound
}

func (r *stubSubscriptionRepo) FindByUserAndType(_ context.Context, userID uint, target domain.SubscriptionTarget) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.UserID == userID && s.TargetType == target {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSubscriptionRepo) FindPostSubscribers(_ context.Context, postID uint) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.TargetType == domain.SubscriptionTargetPost && s.PostID != nil && *s.PostID == postID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSubscriptionRepo) FindUserSubscribers(_ context.Context, userTargetID uint) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.TargetType == domain.SubscriptionTargetUser && s.UserTargetID != nil && *s.UserTargetID == userTargetID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSubscriptionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.subs[id]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}
