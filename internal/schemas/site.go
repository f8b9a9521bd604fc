package schemas

// OAuthProvider describes one external identity provider an instance
// offers for sign-in.
type OAuthProvider struct {
	ID                    int64  `json:"id"`
	DisplayName           string `json:"displayName"`
	AuthorizationEndpoint string `json:"authorizationEndpoint"`
	TokenEndpoint         string `json:"tokenEndpoint"`
	ClientID              string `json:"clientId"`
	Scopes                string `json:"scopes"`
}

// Site is the per-instance aggregate describing an instance's capabilities
// and, when a session exists, the logged-in user.
type Site struct {
	Instance                 string           `json:"instance"`
	Title                    string           `json:"title"`
	Description              *string          `json:"description,omitempty"`
	Sidebar                  *string          `json:"sidebar,omitempty"`
	Icon                     *string          `json:"icon,omitempty"`
	Version                  string           `json:"version"`
	Software                 Software         `json:"software"`
	RegistrationMode         RegistrationMode `json:"registrationMode"`
	ApplicationQuestion      *string          `json:"applicationQuestion,omitempty"`
	Admins                   []string         `json:"admins"`
	Me                       *Person          `json:"me,omitempty"`
	MyEmail                  *string          `json:"myEmail,omitempty"`
	Moderates                []string         `json:"moderates,omitempty"`
	Follows                  []string         `json:"follows,omitempty"`
	CommunityBlocks          []string         `json:"communityBlocks,omitempty"`
	PersonBlocks             []string         `json:"personBlocks,omitempty"`
	OAuthProviders           []OAuthProvider  `json:"oauthProviders,omitempty"`
	UsersActiveDayCount      int              `json:"usersActiveDayCount"`
	UsersActiveWeekCount     int              `json:"usersActiveWeekCount"`
	UsersActiveMonthCount    int              `json:"usersActiveMonthCount"`
	UsersActiveHalfYearCount int              `json:"usersActiveHalfYearCount"`
	PostCount                int              `json:"postCount"`
	CommentCount             int              `json:"commentCount"`
	UserCount                int              `json:"userCount"`
	PrivateInstance          bool             `json:"privateInstance"`
	ShowNSFW                 bool             `json:"showNsfw"`
	BlurNSFW                 bool             `json:"blurNsfw"`
	EnablePostDownvotes      bool             `json:"enablePostDownvotes"`
	EnableCommentDownvotes   bool             `json:"enableCommentDownvotes"`
}
