// Package blueprint defines the operation contract every server-family
// adapter implements and the error taxonomy adapters translate remote
// failures into. Callers hold a Backend and never branch on the concrete
// family behind it.
package blueprint

import (
	"context"

	"Alcove/internal/schemas"
)

// Family is the concrete adapter implementation for an instance. It is
// finer-grained than schemas.Software because Lemmy's v3 and v4 HTTP APIs
// are incompatible enough to need separate adapters.
type Family string

const (
	FamilyLemmyV3 Family = "lemmy-v3"
	FamilyLemmyV4 Family = "lemmy-v4"
	FamilyPieFed  Family = "piefed"
)

// PostItem bundles a converted post with its creator and community, the
// way list endpoints return them.
type PostItem struct {
	Post      schemas.Post
	Creator   schemas.Person
	Community schemas.Community
}

type GetSiteResponse struct {
	Site schemas.Site
	// Profiles are the person entities discovered while building the site
	// view (admins, the logged-in user) so callers can warm their caches.
	Profiles []schemas.Person
}

type GetPostResponse struct {
	Post    schemas.Post
	Creator schemas.Person
}

type GetPostsResponse struct {
	Posts      []PostItem
	NextCursor *string
}

type GetCommentsResponse struct {
	Comments   []schemas.Comment
	Creators   []schemas.Person
	NextCursor *string
}

type GetPersonContentResponse struct {
	Posts      []schemas.Post
	Comments   []schemas.Comment
	NextCursor *string
}

type GetCommunityResponse struct {
	Community schemas.Community
	Mods      []schemas.Person
}

type GetCommunitiesResponse struct {
	Communities []schemas.Community
	NextCursor  *string
}

type SearchResponse struct {
	Posts       []schemas.Post
	Comments    []schemas.Comment
	Communities []schemas.Community
	Users       []schemas.Person
	NextCursor  *string
}

type ResolveObjectResponse struct {
	Post      *schemas.Post
	Comment   *schemas.Comment
	Community *schemas.Community
	Person    *schemas.Person
}

type LoginResponse struct {
	// Token is the opaque bearer token for the new session. Nothing above
	// the adapter ever decodes it.
	Token string
}

type RegisterResponse struct {
	Token *string
	// RegistrationCreated and VerifyEmailSent distinguish "pending, not
	// failed" outcomes from a session being issued immediately.
	RegistrationCreated bool
	VerifyEmailSent     bool
}

type Captcha struct {
	UUID string
	// PNG and WAV are base64 payloads for the image and audio challenge.
	PNG string
	WAV string
}

type GetPrivateMessagesResponse struct {
	PrivateMessages []schemas.PrivateMessage
	Profiles        []schemas.Person
	NextCursor      *string
}

type GetRepliesResponse struct {
	Replies    []schemas.Reply
	Comments   []schemas.Comment
	Profiles   []schemas.Person
	NextCursor *string
}

type LinkMetadata struct {
	Title         *string
	Description   *string
	ContentType   *string
	ImageURL      *string
	EmbedVideoURL *string
}

// Backend is the uniform operation surface over one remote instance. Each
// method issues at most the remote calls it needs and returns freshly
// constructed normalized values; adapters never mutate previously returned
// entities, and they hold no state beyond the session token and the apId
// resolution cache.
type Backend interface {
	Software() schemas.Software
	Family() Family
	Instance() string

	GetSite(ctx context.Context) (*GetSiteResponse, error)

	GetPost(ctx context.Context, form schemas.GetPost) (*GetPostResponse, error)
	GetPosts(ctx context.Context, form schemas.GetPosts) (*GetPostsResponse, error)
	CreatePost(ctx context.Context, form schemas.CreatePost) (*schemas.Post, error)
	EditPost(ctx context.Context, form schemas.EditPost) (*schemas.Post, error)
	DeletePost(ctx context.Context, form schemas.DeletePost) (*schemas.Post, error)
	RemovePost(ctx context.Context, form schemas.RemovePost) (*schemas.Post, error)
	LikePost(ctx context.Context, form schemas.LikePost) (*schemas.Post, error)
	SavePost(ctx context.Context, form schemas.SavePost) (*schemas.Post, error)
	FeaturePost(ctx context.Context, form schemas.FeaturePost) (*schemas.Post, error)
	LockPost(ctx context.Context, form schemas.LockPost) (*schemas.Post, error)
	MarkPostRead(ctx context.Context, form schemas.MarkPostRead) error
	CreatePostReport(ctx context.Context, form schemas.CreatePostReport) error

	GetComments(ctx context.Context, form schemas.GetComments) (*GetCommentsResponse, error)
	CreateComment(ctx context.Context, form schemas.CreateComment) (*schemas.Comment, error)
	EditComment(ctx context.Context, form schemas.EditComment) (*schemas.Comment, error)
	DeleteComment(ctx context.Context, form schemas.DeleteComment) (*schemas.Comment, error)
	RemoveComment(ctx context.Context, form schemas.RemoveComment) (*schemas.Comment, error)
	LikeComment(ctx context.Context, form schemas.LikeComment) (*schemas.Comment, error)
	SaveComment(ctx context.Context, form schemas.SaveComment) (*schemas.Comment, error)
	LockComment(ctx context.Context, form schemas.LockComment) (*schemas.Comment, error)
	CreateCommentReport(ctx context.Context, form schemas.CreateCommentReport) error

	GetCommunity(ctx context.Context, form schemas.GetCommunity) (*GetCommunityResponse, error)
	GetCommunities(ctx context.Context, form schemas.GetCommunities) (*GetCommunitiesResponse, error)
	FollowCommunity(ctx context.Context, form schemas.FollowCommunity) (*schemas.Community, error)
	BlockCommunity(ctx context.Context, form schemas.BlockCommunity) error

	GetPerson(ctx context.Context, form schemas.GetPerson) (*schemas.Person, error)
	GetPersonContent(ctx context.Context, form schemas.GetPersonContent) (*GetPersonContentResponse, error)
	BlockPerson(ctx context.Context, form schemas.BlockPerson) error

	Search(ctx context.Context, form schemas.Search) (*SearchResponse, error)
	ResolveObject(ctx context.Context, form schemas.ResolveObject) (*ResolveObjectResponse, error)

	Login(ctx context.Context, form schemas.Login) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, form schemas.Register) (*RegisterResponse, error)
	GetCaptcha(ctx context.Context) (*Captcha, error)
	SaveUserSettings(ctx context.Context, form schemas.SaveUserSettings) error

	GetPrivateMessages(ctx context.Context, form schemas.GetPrivateMessages) (*GetPrivateMessagesResponse, error)
	CreatePrivateMessage(ctx context.Context, form schemas.CreatePrivateMessage) (*schemas.PrivateMessage, error)
	MarkPrivateMessageRead(ctx context.Context, form schemas.MarkPrivateMessageRead) error
	GetReplies(ctx context.Context, form schemas.GetReplies) (*GetRepliesResponse, error)
	GetMentions(ctx context.Context, form schemas.GetReplies) (*GetRepliesResponse, error)
	MarkReplyRead(ctx context.Context, form schemas.MarkReplyRead) error
	MarkMentionRead(ctx context.Context, form schemas.MarkMentionRead) error
	MarkAllRead(ctx context.Context) error

	GetLinkMetadata(ctx context.Context, form schemas.GetLinkMetadata) (*LinkMetadata, error)
}
