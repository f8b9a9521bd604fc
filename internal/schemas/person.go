package schemas

import "time"

// Person is the normalized profile view of a user.
type Person struct {
	CreatedAt    time.Time `json:"createdAt"`
	ApID         string    `json:"apId"`
	Slug         string    `json:"slug"`
	Avatar       *string   `json:"avatar,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	MatrixUserID *string   `json:"matrixUserId,omitempty"`
	PostCount    *int      `json:"postCount,omitempty"`
	CommentCount *int      `json:"commentCount,omitempty"`
	ID           int64     `json:"id"`
	Deleted      bool      `json:"deleted"`
	IsBot        bool      `json:"isBot"`
	IsBanned     bool      `json:"isBanned"`
}
