package lemmyv4

// Wire types for the Lemmy v4 (Lemmy 1.0) HTTP API. Only the fields the
// adapter consumes are declared; unknown fields are ignored on decode.

type wirePost struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Body              *string  `json:"body"`
	URL               *string  `json:"url"`
	URLContentType    *string  `json:"url_content_type"`
	ThumbnailURL      *string  `json:"thumbnail_url"`
	EmbedVideoURL     *string  `json:"embed_video_url"`
	AltText           *string  `json:"alt_text"`
	ApID              string   `json:"ap_id"`
	PublishedAt       wireTime `json:"published_at"`
	Upvotes           int      `json:"upvotes"`
	Downvotes         int      `json:"downvotes"`
	Comments          int      `json:"comments"`
	Deleted           bool     `json:"deleted"`
	Removed           bool     `json:"removed"`
	Locked            bool     `json:"locked"`
	NSFW              bool     `json:"nsfw"`
	FeaturedCommunity bool     `json:"featured_community"`
	FeaturedLocal     bool     `json:"featured_local"`
}

// wirePostActions is present only when the viewer has acted on the post.
type wirePostActions struct {
	ReadAt       *wireTime `json:"read_at"`
	SavedAt      *wireTime `json:"saved_at"`
	VoteIsUpvote *bool     `json:"vote_is_upvote"`
}

type wireImageDetails struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type wirePostView struct {
	Post                      wirePost          `json:"post"`
	Community                 wireCommunity     `json:"community"`
	Creator                   wirePerson        `json:"creator"`
	PostActions               *wirePostActions  `json:"post_actions"`
	ImageDetails              *wireImageDetails `json:"image_details"`
	CreatorBannedFromCommunity bool             `json:"creator_banned_from_community"`
}

type wireCommunity struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	ApID                string   `json:"ap_id"`
	PublishedAt         wireTime `json:"published_at"`
	Icon                *string  `json:"icon"`
	Banner              *string  `json:"banner"`
	Description         *string  `json:"description"`
	UsersActiveDay      int      `json:"users_active_day"`
	UsersActiveWeek     int      `json:"users_active_week"`
	UsersActiveMonth    int      `json:"users_active_month"`
	UsersActiveHalfYear int      `json:"users_active_half_year"`
	Posts               int      `json:"posts"`
	Comments            int      `json:"comments"`
	Subscribers         int      `json:"subscribers"`
	SubscribersLocal    int      `json:"subscribers_local"`
	NSFW                bool     `json:"nsfw"`
}

type wireCommunityActions struct {
	FollowState *string `json:"follow_state"`
}

type wireCommunityView struct {
	Community        wireCommunity         `json:"community"`
	CommunityActions *wireCommunityActions `json:"community_actions"`
}

type wirePerson struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ApID         string   `json:"ap_id"`
	PublishedAt  wireTime `json:"published_at"`
	Avatar       *string  `json:"avatar"`
	Bio          *string  `json:"bio"`
	MatrixUserID *string  `json:"matrix_user_id"`
	PostCount    *int     `json:"post_count"`
	CommentCount *int     `json:"comment_count"`
	Deleted      bool     `json:"deleted"`
	BotAccount   bool     `json:"bot_account"`
}

type wirePersonView struct {
	Person wirePerson `json:"person"`
}

type wireComment struct {
	ID          int64    `json:"id"`
	Content     string   `json:"content"`
	Path        string   `json:"path"`
	ApID        string   `json:"ap_id"`
	PublishedAt wireTime `json:"published_at"`
	Upvotes     int      `json:"upvotes"`
	Downvotes   int      `json:"downvotes"`
	ChildCount  int      `json:"child_count"`
	Deleted     bool     `json:"deleted"`
	Removed     bool     `json:"removed"`
	Locked      bool     `json:"locked"`
}

type wireCommentActions struct {
	SavedAt      *wireTime `json:"saved_at"`
	VoteIsUpvote *bool     `json:"vote_is_upvote"`
}

type wireCommentView struct {
	Comment                    wireComment         `json:"comment"`
	Post                       wirePost            `json:"post"`
	Community                  wireCommunity       `json:"community"`
	Creator                    wirePerson          `json:"creator"`
	CommentActions             *wireCommentActions `json:"comment_actions"`
	CreatorBannedFromCommunity bool                `json:"creator_banned_from_community"`
}

type wireLocalSite struct {
	PrivateInstance     bool    `json:"private_instance"`
	RegistrationMode    string  `json:"registration_mode"`
	ApplicationQuestion *string `json:"application_question"`
	EnableDownvotes     *bool   `json:"enable_downvotes"`
	UsersActiveDay      int     `json:"users_active_day"`
	UsersActiveWeek     int     `json:"users_active_week"`
	UsersActiveMonth    int     `json:"users_active_month"`
	UsersActiveHalfYear int     `json:"users_active_half_year"`
	Posts               int     `json:"posts"`
	Comments            int     `json:"comments"`
	Users               int     `json:"users"`
}

type wireSite struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Sidebar     *string `json:"sidebar"`
	Icon        *string `json:"icon"`
}

type wireOAuthProvider struct {
	ID                    int64  `json:"id"`
	DisplayName           string `json:"display_name"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	ClientID              string `json:"client_id"`
	Scopes                string `json:"scopes"`
}

type getSiteResponse struct {
	SiteView struct {
		Site      wireSite      `json:"site"`
		LocalSite wireLocalSite `json:"local_site"`
	} `json:"site_view"`
	Admins         []wirePersonView    `json:"admins"`
	Version        string              `json:"version"`
	OAuthProviders []wireOAuthProvider `json:"oauth_providers"`
}

type getMyUserResponse struct {
	LocalUserView struct {
		Person    wirePerson `json:"person"`
		LocalUser struct {
			Email *string `json:"email"`
		} `json:"local_user"`
	} `json:"local_user_view"`
}

type getPostResponse struct {
	PostView wirePostView `json:"post_view"`
}

type postResponse struct {
	PostView wirePostView `json:"post_view"`
}

type listPostsResponse struct {
	Items    []wirePostView `json:"items"`
	NextPage *string        `json:"next_page"`
}

type commentResponse struct {
	CommentView wireCommentView `json:"comment_view"`
}

type listCommentsResponse struct {
	Items    []wireCommentView `json:"items"`
	NextPage *string           `json:"next_page"`
}

type communityResponse struct {
	CommunityView wireCommunityView `json:"community_view"`
	Moderators    []struct {
		Moderator wirePerson `json:"moderator"`
	} `json:"moderators"`
}

type listCommunitiesResponse struct {
	Items    []wireCommunityView `json:"items"`
	NextPage *string             `json:"next_page"`
}

// wireSearchItem is the discriminated union returned by search. Exactly
// the fields for the named type are populated.
type wireSearchItem struct {
	Type string `json:"type_"`

	// post and comment results
	Post    *wirePost    `json:"post"`
	Comment *wireComment `json:"comment"`

	Community        *wireCommunity        `json:"community"`
	CommunityActions *wireCommunityActions `json:"community_actions"`
	Creator          *wirePerson           `json:"creator"`
	Person           *wirePerson           `json:"person"`

	PostActions                *wirePostActions    `json:"post_actions"`
	CommentActions             *wireCommentActions `json:"comment_actions"`
	ImageDetails               *wireImageDetails   `json:"image_details"`
	CreatorBannedFromCommunity bool                `json:"creator_banned_from_community"`
}

type searchResponse struct {
	Search   []wireSearchItem `json:"search"`
	NextPage *string          `json:"next_page"`
}

type resolveObjectResponse struct {
	Resolve *wireSearchItem `json:"resolve"`
}

type listPersonContentResponse struct {
	Items    []wireSearchItem `json:"items"`
	NextPage *string          `json:"next_page"`
}

type loginResponse struct {
	JWT *string `json:"jwt"`
}

type registerResponse struct {
	JWT                 *string `json:"jwt"`
	RegistrationCreated bool    `json:"registration_created"`
	VerifyEmailSent     bool    `json:"verify_email_sent"`
}

type captchaResponse struct {
	OK *struct {
		UUID string `json:"uuid"`
		PNG  string `json:"png"`
		WAV  string `json:"wav"`
	} `json:"ok"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type wireNotification struct {
	ID          int64    `json:"id"`
	Read        bool     `json:"read"`
	PublishedAt wireTime `json:"published_at"`
}

type wirePrivateMessage struct {
	Content     string   `json:"content"`
	PublishedAt wireTime `json:"published_at"`
}

// wireNotificationData mirrors the notification payload union: a comment
// (reply or mention) or a private message.
type wireNotificationData struct {
	Type string `json:"type_"`

	Comment   *wireComment   `json:"comment"`
	Post      *wirePost      `json:"post"`
	Community *wireCommunity `json:"community"`
	Creator   *wirePerson    `json:"creator"`

	PrivateMessage *wirePrivateMessage `json:"private_message"`
	Recipient      *wirePerson         `json:"recipient"`

	CommentActions             *wireCommentActions `json:"comment_actions"`
	CreatorBannedFromCommunity bool                `json:"creator_banned_from_community"`
}

type wireNotificationView struct {
	Notification wireNotification     `json:"notification"`
	Data         wireNotificationData `json:"data"`
}

type listNotificationsResponse struct {
	Items    []wireNotificationView `json:"items"`
	NextPage *string                `json:"next_page"`
}

type privateMessageResponse struct {
	PrivateMessageView struct {
		PrivateMessage wirePrivateMessage `json:"private_message"`
		Creator        wirePerson         `json:"creator"`
		Recipient      wirePerson         `json:"recipient"`
	} `json:"private_message_view"`
}

type siteMetadataResponse struct {
	Metadata struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		ContentType   *string `json:"content_type"`
		Image         *string `json:"image"`
		EmbedVideoURL *string `json:"embed_video_url"`
	} `json:"metadata"`
}
