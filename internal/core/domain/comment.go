package domain

import "time"

// Comment belongs to a post. A non-nil ParentID makes it a nested reply to
// another comment on the same post. Rating mirrors Post.Rating semantics.
type Comment struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	PostID    uint      `json:"post_id"`
	AuthorID  uint      `json:"author_id"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
