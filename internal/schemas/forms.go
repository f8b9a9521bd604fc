package schemas

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Forms are the backend-agnostic inputs to adapter operations. Write forms
// validate themselves before any remote call is made; read forms are
// accepted as-is since the backend is the authority on what they mean.

// PageCursor is an opaque pagination token. The empty string requests the
// first page; adapters return nil from an operation's NextCursor when the
// listing is exhausted.
type PageCursor = string

type GetPosts struct {
	Sort          PostSort    `json:"sort,omitempty"`
	Type          ListingType `json:"type,omitempty"`
	CommunitySlug string      `json:"communitySlug,omitempty"`
	PageCursor    PageCursor  `json:"pageCursor,omitempty"`
	ShowRead      bool        `json:"showRead,omitempty"`
}

type GetPost struct {
	ApID string `json:"apId"`
}

func (f GetPost) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ApID, validation.Required),
	)
}

type GetComments struct {
	PostApID   string      `json:"postApId,omitempty"`
	Sort       CommentSort `json:"sort,omitempty"`
	MaxDepth   *int        `json:"maxDepth,omitempty"`
	PageCursor PageCursor  `json:"pageCursor,omitempty"`
}

type GetPerson struct {
	ApIDOrUsername string `json:"apIdOrUsername"`
}

func (f GetPerson) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ApIDOrUsername, validation.Required),
	)
}

// PersonContentType selects posts or comments in GetPersonContent.
type PersonContentType string

const (
	PersonContentPosts    PersonContentType = "Posts"
	PersonContentComments PersonContentType = "Comments"
)

type GetPersonContent struct {
	ApIDOrUsername string            `json:"apIdOrUsername"`
	Type           PersonContentType `json:"type"`
	PageCursor     PageCursor        `json:"pageCursor,omitempty"`
}

type GetCommunity struct {
	Slug string `json:"slug"`
}

func (f GetCommunity) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Slug, validation.Required),
	)
}

type GetCommunities struct {
	Sort       CommunitySort `json:"sort,omitempty"`
	Type       ListingType   `json:"type,omitempty"`
	PageCursor PageCursor    `json:"pageCursor,omitempty"`
}

type CreatePost struct {
	Title         string  `json:"title"`
	CommunitySlug string  `json:"communitySlug"`
	Body          *string `json:"body,omitempty"`
	URL           *string `json:"url,omitempty"`
	ThumbnailURL  *string `json:"thumbnailUrl,omitempty"`
	AltText       *string `json:"altText,omitempty"`
	NSFW          *bool   `json:"nsfw,omitempty"`
}

func (f CreatePost) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.CommunitySlug, validation.Required),
	)
}

type EditPost struct {
	ApID         string  `json:"apId"`
	Title        string  `json:"title"`
	Body         *string `json:"body,omitempty"`
	URL          *string `json:"url,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	AltText      *string `json:"altText,omitempty"`
}

func (f EditPost) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ApID, validation.Required),
		validation.Field(&f.Title, validation.Required),
	)
}

type DeletePost struct {
	PostID  int64 `json:"postId"`
	Deleted bool  `json:"deleted"`
}

type LikePost struct {
	PostID int64 `json:"postId"`
	// Score is -1, 0, or 1; 0 retracts the vote.
	Score int `json:"score"`
}

func (f LikePost) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Score, validation.Min(-1), validation.Max(1)),
	)
}

type SavePost struct {
	PostID int64 `json:"postId"`
	Save   bool  `json:"save"`
}

// PostFeatureType selects the scope a post is pinned to.
type PostFeatureType string

const (
	PostFeatureLocal     PostFeatureType = "Local"
	PostFeatureCommunity PostFeatureType = "Community"
)

type FeaturePost struct {
	PostID      int64           `json:"postId"`
	FeatureType PostFeatureType `json:"featureType"`
	Featured    bool            `json:"featured"`
}

type LockPost struct {
	PostID int64 `json:"postId"`
	Locked bool  `json:"locked"`
}

type RemovePost struct {
	PostID  int64  `json:"postId"`
	Removed bool   `json:"removed"`
	Reason  string `json:"reason,omitempty"`
}

type MarkPostRead struct {
	PostIDs []int64 `json:"postIds"`
	Read    bool    `json:"read"`
}

type CreatePostReport struct {
	PostID int64  `json:"postId"`
	Reason string `json:"reason"`
}

func (f CreatePostReport) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Reason, validation.Required),
	)
}

type CreateComment struct {
	PostApID string `json:"postApId"`
	Body     string `json:"body"`
	ParentID *int64 `json:"parentId,omitempty"`
}

func (f CreateComment) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.PostApID, validation.Required),
		validation.Field(&f.Body, validation.Required),
	)
}

type EditComment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

func (f EditComment) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Body, validation.Required),
	)
}

type DeleteComment struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

type LikeComment struct {
	ID    int64 `json:"id"`
	Score int   `json:"score"`
}

func (f LikeComment) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Score, validation.Min(-1), validation.Max(1)),
	)
}

type SaveComment struct {
	CommentID int64 `json:"commentId"`
	Save      bool  `json:"save"`
}

type LockComment struct {
	CommentID int64 `json:"commentId"`
	Locked    bool  `json:"locked"`
}

type RemoveComment struct {
	CommentID int64  `json:"commentId"`
	Removed   bool   `json:"removed"`
	Reason    string `json:"reason,omitempty"`
}

type CreateCommentReport struct {
	CommentID int64  `json:"commentId"`
	Reason    string `json:"reason"`
}

func (f CreateCommentReport) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Reason, validation.Required),
	)
}

type FollowCommunity struct {
	CommunityID int64 `json:"communityId"`
	Follow      bool  `json:"follow"`
}

type BlockPerson struct {
	PersonID int64 `json:"personId"`
	Block    bool  `json:"block"`
}

type BlockCommunity struct {
	CommunityID int64 `json:"communityId"`
	Block       bool  `json:"block"`
}

type Search struct {
	Q             string     `json:"q"`
	Type          SearchType `json:"type"`
	CommunitySlug string     `json:"communitySlug,omitempty"`
	PageCursor    PageCursor `json:"pageCursor,omitempty"`
	Limit         *int       `json:"limit,omitempty"`
}

func (f Search) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Q, validation.Required),
	)
}

type ResolveObject struct {
	Q string `json:"q"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// MFACode is the 6-digit one-time code, set on resubmission after the
	// backend signals that 2FA is required.
	MFACode *string `json:"mfaCode,omitempty"`
}

func (f Login) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

type Register struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	RepeatPassword string  `json:"repeatPassword"`
	Email          *string `json:"email,omitempty"`
	ShowNSFW       bool    `json:"showNsfw"`
	CaptchaUUID    *string `json:"captchaUuid,omitempty"`
	CaptchaAnswer  *string `json:"captchaAnswer,omitempty"`
	// Answer is the response to the instance's application question, when
	// registration mode requires an application.
	Answer *string `json:"answer,omitempty"`
}

func (f Register) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
		validation.Field(&f.RepeatPassword, validation.Required, validation.In(f.Password).Error("passwords do not match")),
	)
}

type GetPrivateMessages struct {
	UnreadOnly bool       `json:"unreadOnly,omitempty"`
	PageCursor PageCursor `json:"pageCursor,omitempty"`
}

type CreatePrivateMessage struct {
	RecipientID int64  `json:"recipientId"`
	Body        string `json:"body"`
}

func (f CreatePrivateMessage) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Body, validation.Required),
	)
}

type MarkPrivateMessageRead struct {
	ID   int64 `json:"id"`
	Read bool  `json:"read"`
}

type GetReplies struct {
	UnreadOnly bool       `json:"unreadOnly,omitempty"`
	PageCursor PageCursor `json:"pageCursor,omitempty"`
}

type MarkReplyRead struct {
	ID   int64 `json:"id"`
	Read bool  `json:"read"`
}

type MarkMentionRead struct {
	ID   int64 `json:"id"`
	Read bool  `json:"read"`
}

type SaveUserSettings struct {
	Bio         *string `json:"bio,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type GetLinkMetadata struct {
	URL string `json:"url"`
}

func (f GetLinkMetadata) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.URL, validation.Required),
	)
}
