package domain

// Allowed vote values.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote records a single user's ±1 on a post or a comment. Exactly one of
// PostID / CommentID is set. At most one vote exists per (user, target).
type Vote struct {
	ID        uint  `json:"id"`
	UserID    uint  `json:"user_id"`
	PostID    *uint `json:"post_id,omitempty"`
	CommentID *uint `json:"comment_id,omitempty"`
	Value     int   `json:"value"`
}

// VoteTargetKind discriminates what a vote applies to.
type VoteTargetKind string

const (
	VoteTargetPost    VoteTargetKind = "post"
	VoteTargetComment VoteTargetKind = "comment"
)

// VoteTarget identifies the entity being voted on.
type VoteTarget struct {
	Kind VoteTargetKind
	ID   uint
}

// PostTarget returns a VoteTarget for the given post.
func PostTarget(postID uint) VoteTarget {
	return VoteTarget{Kind: VoteTargetPost, ID: postID}
}

// CommentTarget returns a VoteTarget for the given comment.
func CommentTarget(commentID uint) VoteTarget {
	return VoteTarget{Kind: VoteTargetComment, ID: commentID}
}
