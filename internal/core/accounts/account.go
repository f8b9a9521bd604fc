package accounts

import "time"

// Account is one signed-in (or guest) session on an instance. Token is
// the opaque bearer token issued by the instance; it is stored and
// replayed verbatim, never decoded.
type Account struct {
	ID          int64     `json:"id"`
	Instance    string    `json:"instance"`
	Token       string    `json:"-"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsGuest reports whether the account carries no session token.
func (a Account) IsGuest() bool { return a.Token == "" }

// Prefixer namespaces cache keys by account identity so entities cached
// for one account or instance never collide with another's.
type Prefixer func(key string) string
