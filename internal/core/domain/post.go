package domain

import "time"

// Post is a top-level forum entry. Rating is a denormalized projection of the
// post's vote set, rewritten from scratch after every vote mutation.
type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
