package schemas

import "time"

// SubscribedState describes the viewer's follow relationship with a
// community.
type SubscribedState string

const (
	SubscribedStateSubscribed    SubscribedState = "Subscribed"
	SubscribedStatePending       SubscribedState = "Pending"
	SubscribedStateNotSubscribed SubscribedState = "NotSubscribed"
)

// Community is the normalized profile/aggregate view of a community.
type Community struct {
	CreatedAt                time.Time       `json:"createdAt"`
	ApID                     string          `json:"apId"`
	Slug                     string          `json:"slug"`
	Icon                     *string         `json:"icon,omitempty"`
	Banner                   *string         `json:"banner,omitempty"`
	Description              *string         `json:"description,omitempty"`
	Subscribed               SubscribedState `json:"subscribed"`
	ID                       int64           `json:"id"`
	UsersActiveDayCount      int             `json:"usersActiveDayCount"`
	UsersActiveWeekCount     int             `json:"usersActiveWeekCount"`
	UsersActiveMonthCount    int             `json:"usersActiveMonthCount"`
	UsersActiveHalfYearCount int             `json:"usersActiveHalfYearCount"`
	PostCount                int             `json:"postCount"`
	CommentCount             int             `json:"commentCount"`
	SubscriberCount          int             `json:"subscriberCount"`
	SubscribersLocalCount    int             `json:"subscribersLocalCount"`
	NSFW                     bool            `json:"nsfw"`
}
