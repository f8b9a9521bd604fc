package lemmyv3

// Wire types for the Lemmy v3 (0.19.x) HTTP API. v3 splits vote and
// comment tallies into a separate counts object and reports the viewer's
// state as plain fields on the view.

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
	Published         wireTime `json:"published"`
	Deleted           bool     `json:"deleted"`
	Removed           bool     `json:"removed"`
	Locked            bool     `json:"locked"`
	NSFW              bool     `json:"nsfw"`
	FeaturedCommunity bool     `json:"featured_community"`
	FeaturedLocal     bool     `json:"featured_local"`
}

type wirePostCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Comments  int `json:"comments"`
}

type wireImageDetails struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type wirePostView struct {
	Post                       wirePost          `json:"post"`
	Community                  wireCommunity     `json:"community"`
	Creator                    wirePerson        `json:"creator"`
	Counts                     wirePostCounts    `json:"counts"`
	ImageDetails               *wireImageDetails `json:"image_details"`
	MyVote                     *int              `json:"my_vote"`
	Saved                      bool              `json:"saved"`
	Read                       bool              `json:"read"`
	CreatorBannedFromCommunity bool              `json:"creator_banned_from_community"`
}

type wireCommunity struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	ApID        string   `json:"actor_id"`
	Published   wireTime `json:"published"`
	Icon        *string  `json:"icon"`
	Banner      *string  `json:"banner"`
	Description *string  `json:"description"`
	NSFW        bool     `json:"nsfw"`
}

type wireCommunityCounts struct {
	UsersActiveDay      int `json:"users_active_day"`
	UsersActiveWeek     int `json:"users_active_week"`
	UsersActiveMonth    int `json:"users_active_month"`
	UsersActiveHalfYear int `json:"users_active_half_year"`
	Posts               int `json:"posts"`
	Comments            int `json:"comments"`
	Subscribers         int `json:"subscribers"`
	SubscribersLocal    int `json:"subscribers_local"`
}

type wireCommunityView struct {
	Community wireCommunity       `json:"community"`
	Counts    wireCommunityCounts `json:"counts"`
	// Subscribed is "Subscribed", "Pending" or "NotSubscribed".
	Subscribed string `json:"subscribed"`
	Blocked    bool   `json:"blocked"`
}

type wirePerson struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ApID         string   `json:"actor_id"`
	Published    wireTime `json:"published"`
	Avatar       *string  `json:"avatar"`
	Bio          *string  `json:"bio"`
	MatrixUserID *string  `json:"matrix_user_id"`
	Deleted      bool     `json:"deleted"`
	BotAccount   bool     `json:"bot_account"`
}

type wirePersonCounts struct {
	PostCount    int `json:"post_count"`
	CommentCount int `json:"comment_count"`
}

type wirePersonView struct {
	Person wirePerson        `json:"person"`
	Counts *wirePersonCounts `json:"counts"`
}

type wireComment struct {
	ID            int64    `json:"id"`
	Content       string   `json:"content"`
	Path          string   `json:"path"`
	ApID          string   `json:"ap_id"`
	Published     wireTime `json:"published"`
	Deleted       bool     `json:"deleted"`
	Removed       bool     `json:"removed"`
	Distinguished bool     `json:"distinguished"`
}

type wireCommentCounts struct {
	Upvotes    int `json:"upvotes"`
	Downvotes  int `json:"downvotes"`
	ChildCount int `json:"child_count"`
}

type wireCommentView struct {
	Comment                    wireComment       `json:"comment"`
	Post                       wirePost          `json:"post"`
	Community                  wireCommunity     `json:"community"`
	Creator                    wirePerson        `json:"creator"`
	Counts                     wireCommentCounts `json:"counts"`
	MyVote                     *int              `json:"my_vote"`
	Saved                      bool              `json:"saved"`
	CreatorBannedFromCommunity bool              `json:"creator_banned_from_community"`
}

type wireLocalSite struct {
	PrivateInstance bool `json:"private_instance"`
	// RegistrationMode is "Closed", "RequireApplication" or "Open".
	RegistrationMode         string  `json:"registration_mode"`
	ApplicationQuestion      *string `json:"application_question"`
	EnableDownvotes          bool    `json:"enable_downvotes"`
	CaptchaEnabled           bool    `json:"captcha_enabled"`
	SiteSetup                bool    `json:"site_setup"`
	RequireEmailVerification bool    `json:"require_email_verification"`
}

type wireSiteCounts struct {
	UsersActiveDay      int `json:"users_active_day"`
	UsersActiveWeek     int `json:"users_active_week"`
	UsersActiveMonth    int `json:"users_active_month"`
	UsersActiveHalfYear int `json:"users_active_half_year"`
	Posts               int `json:"posts"`
	Comments            int `json:"comments"`
	Users               int `json:"users"`
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

type wireLocalUser struct {
	Email    *string `json:"email"`
	ShowNSFW bool    `json:"show_nsfw"`
}

type wireMyUser struct {
	LocalUserView struct {
		Person    wirePerson    `json:"person"`
		LocalUser wireLocalUser `json:"local_user"`
	} `json:"local_user_view"`
	Moderates []struct {
		Community wireCommunity `json:"community"`
	} `json:"moderates"`
	Follows []struct {
		Community wireCommunity `json:"community"`
	} `json:"follows"`
	CommunityBlocks []struct {
		Community wireCommunity `json:"community"`
	} `json:"community_blocks"`
	PersonBlocks []struct {
		Target wirePerson `json:"target"`
	} `json:"person_blocks"`
}

type getSiteResponse struct {
	SiteView struct {
		Site      wireSite       `json:"site"`
		LocalSite wireLocalSite  `json:"local_site"`
		Counts    wireSiteCounts `json:"counts"`
	} `json:"site_view"`
	Admins         []wirePersonView    `json:"admins"`
	Version        string              `json:"version"`
	MyUser         *wireMyUser         `json:"my_user"`
	OAuthProviders []wireOAuthProvider `json:"oauth_providers"`
}

type postResponse struct {
	PostView wirePostView `json:"post_view"`
}

type getPostsResponse struct {
	Posts    []wirePostView `json:"posts"`
	NextPage *string        `json:"next_page"`
}

type commentResponse struct {
	CommentView wireCommentView `json:"comment_view"`
}

type getCommentsResponse struct {
	Comments []wireCommentView `json:"comments"`
}

type communityResponse struct {
	CommunityView wireCommunityView `json:"community_view"`
	Moderators    []struct {
		Moderator wirePerson `json:"moderator"`
	} `json:"moderators"`
}

type listCommunitiesResponse struct {
	Communities []wireCommunityView `json:"communities"`
}

type searchResponse struct {
	Posts       []wirePostView      `json:"posts"`
	Comments    []wireCommentView   `json:"comments"`
	Communities []wireCommunityView `json:"communities"`
	Users       []wirePersonView    `json:"users"`
}

type resolveObjectResponse struct {
	Post      *wirePostView      `json:"post"`
	Comment   *wireCommentView   `json:"comment"`
	Community *wireCommunityView `json:"community"`
	Person    *wirePersonView    `json:"person"`
}

type getPersonDetailsResponse struct {
	PersonView wirePersonView    `json:"person_view"`
	Posts      []wirePostView    `json:"posts"`
	Comments   []wireCommentView `json:"comments"`
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

type wirePrivateMessage struct {
	ID        int64    `json:"id"`
	Content   string   `json:"content"`
	Published wireTime `json:"published"`
	Read      bool     `json:"read"`
}

type wirePrivateMessageView struct {
	PrivateMessage wirePrivateMessage `json:"private_message"`
	Creator        wirePerson         `json:"creator"`
	Recipient      wirePerson         `json:"recipient"`
}

type privateMessageResponse struct {
	PrivateMessageView wirePrivateMessageView `json:"private_message_view"`
}

type getPrivateMessagesResponse struct {
	PrivateMessages []wirePrivateMessageView `json:"private_messages"`
}

// wireCommentReply is the notification record behind a reply; mentions use
// the same shape under person_mention.
type wireCommentReply struct {
	ID        int64    `json:"id"`
	Read      bool     `json:"read"`
	Published wireTime `json:"published"`
}

type wireCommentReplyView struct {
	CommentReply               wireCommentReply  `json:"comment_reply"`
	Comment                    wireComment       `json:"comment"`
	Post                       wirePost          `json:"post"`
	Community                  wireCommunity     `json:"community"`
	Creator                    wirePerson        `json:"creator"`
	Counts                     wireCommentCounts `json:"counts"`
	MyVote                     *int              `json:"my_vote"`
	Saved                      bool              `json:"saved"`
	CreatorBannedFromCommunity bool              `json:"creator_banned_from_community"`
}

type getRepliesResponse struct {
	Replies []wireCommentReplyView `json:"replies"`
}

type wirePersonMentionView struct {
	PersonMention              wireCommentReply  `json:"person_mention"`
	Comment                    wireComment       `json:"comment"`
	Post                       wirePost          `json:"post"`
	Community                  wireCommunity     `json:"community"`
	Creator                    wirePerson        `json:"creator"`
	Counts                     wireCommentCounts `json:"counts"`
	MyVote                     *int              `json:"my_vote"`
	Saved                      bool              `json:"saved"`
	CreatorBannedFromCommunity bool              `json:"creator_banned_from_community"`
}

type getMentionsResponse struct {
	Mentions []wirePersonMentionView `json:"mentions"`
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
