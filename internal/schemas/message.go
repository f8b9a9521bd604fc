package schemas

import "time"

// PrivateMessage is a direct message between two people. Read state is
// per-recipient.
type PrivateMessage struct {
	CreatedAt     time.Time `json:"createdAt"`
	Body          string    `json:"body"`
	CreatorApID   string    `json:"creatorApId"`
	CreatorSlug   string    `json:"creatorSlug"`
	RecipientApID string    `json:"recipientApId"`
	RecipientSlug string    `json:"recipientSlug"`
	ID            int64     `json:"id"`
	CreatorID     int64     `json:"creatorId"`
	RecipientID   int64     `json:"recipientId"`
	Read          bool      `json:"read"`
}

// Reply is a reply-or-mention notification pointing at a comment.
type Reply struct {
	CreatedAt     time.Time `json:"createdAt"`
	Body          string    `json:"body"`
	Path          string    `json:"path"`
	ApID          string    `json:"apId"`
	CommentApID   string    `json:"commentApId"`
	CommunityApID string    `json:"communityApId"`
	CommunitySlug string    `json:"communitySlug"`
	CreatorApID   string    `json:"creatorApId"`
	CreatorSlug   string    `json:"creatorSlug"`
	PostApID      string    `json:"postApId"`
	PostName      string    `json:"postName"`
	ID            int64     `json:"id"`
	CommentID     int64     `json:"commentId"`
	CreatorID     int64     `json:"creatorId"`
	PostID        int64     `json:"postId"`
	Read          bool      `json:"read"`
	Deleted       bool      `json:"deleted"`
	Removed       bool      `json:"removed"`
}
