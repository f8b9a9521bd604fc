package schemas

import "time"

// Comment is the normalized view of a comment. Path is the materialized
// tree path (dot-separated ancestor ids) used for threading and ordering.
type Comment struct {
	CreatedAt     time.Time `json:"createdAt"`
	Body          string    `json:"body"`
	Path          string    `json:"path"`
	ApID          string    `json:"apId"`
	PostApID      string    `json:"postApId"`
	PostTitle     string    `json:"postTitle,omitempty"`
	CommunityApID string    `json:"communityApId"`
	CommunitySlug string    `json:"communitySlug"`
	CreatorApID   string    `json:"creatorApId"`
	CreatorSlug   string    `json:"creatorSlug"`
	ID            int64     `json:"id"`
	PostID        int64     `json:"postId"`
	CreatorID     int64     `json:"creatorId"`
	Upvotes       int       `json:"upvotes"`
	Downvotes     int       `json:"downvotes"`
	ChildCount    int       `json:"childCount"`
	// MyVote follows the same tri-state convention as Post.MyVote.
	MyVote                *int `json:"myVote,omitempty"`
	Deleted               bool `json:"deleted"`
	Removed               bool `json:"removed"`
	Locked                bool `json:"locked"`
	Saved                 bool `json:"saved"`
	IsBannedFromCommunity bool `json:"isBannedFromCommunity"`
}
