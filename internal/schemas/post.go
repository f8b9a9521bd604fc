package schemas

import "time"

// Post is the normalized view of a post, independent of which backend
// produced it.
//
// ApID is the only identifier that is stable across backend software and
// across instances. ID is the numeric id on the instance the adapter is
// bound to; it is only meaningful within that adapter's session and must
// never be persisted across instances.
type Post struct {
	CreatedAt            time.Time `json:"createdAt"`
	Title                string    `json:"title"`
	Body                 *string   `json:"body,omitempty"`
	URL                  *string   `json:"url,omitempty"`
	URLContentType       *string   `json:"urlContentType,omitempty"`
	ThumbnailURL         *string   `json:"thumbnailUrl,omitempty"`
	ThumbnailAspectRatio *float64  `json:"thumbnailAspectRatio,omitempty"`
	EmbedVideoURL        *string   `json:"embedVideoUrl,omitempty"`
	AltText              *string   `json:"altText,omitempty"`
	ApID                 string    `json:"apId"`
	CommunityApID        string    `json:"communityApId"`
	CommunitySlug        string    `json:"communitySlug"`
	CreatorApID          string    `json:"creatorApId"`
	CreatorSlug          string    `json:"creatorSlug"`
	CrossPosts           []string  `json:"crossPosts,omitempty"`
	Flairs               []string  `json:"flairs,omitempty"`
	ID                   int64     `json:"id"`
	CreatorID            int64     `json:"creatorId"`
	Upvotes              int       `json:"upvotes"`
	Downvotes            int       `json:"downvotes"`
	CommentsCount        int       `json:"commentsCount"`
	// MyVote is nil when the viewer has no session, 0 when logged in but
	// not voted, otherwise -1 or 1.
	MyVote                *int `json:"myVote,omitempty"`
	Deleted               bool `json:"deleted"`
	Removed               bool `json:"removed"`
	Locked                bool `json:"locked"`
	Read                  bool `json:"read"`
	Saved                 bool `json:"saved"`
	NSFW                  bool `json:"nsfw"`
	FeaturedCommunity     bool `json:"featuredCommunity"`
	FeaturedLocal         bool `json:"featuredLocal"`
	IsBannedFromCommunity bool `json:"isBannedFromCommunity"`
}
