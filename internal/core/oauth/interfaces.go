package oauth

import (
	"context"
	"time"

	"Alcove/internal/core/accounts"
)

// StateRecord is one pending authorization attempt, keyed by the CSRF
// state token sent to the provider.
type StateRecord struct {
	State       string
	ProviderID  int64
	Instance    string
	RedirectURI string
	ExpiresAt   time.Time
}

// StateStore persists pending authorization attempts for the window
// between redirecting out and the provider redirecting back.
type StateStore interface {
	// Create stores a pending record.
	Create(ctx context.Context, record StateRecord) error

	// Get returns the record for a state token, or ErrStateNotFound.
	Get(ctx context.Context, state string) (*StateRecord, error)

	// Delete removes a record. Deleting an unknown state is not an error.
	Delete(ctx context.Context, state string) error
}

// AccountStore is the slice of the session store the callback needs to
// land a fresh token.
type AccountStore interface {
	HasAccount(instance string) bool
	AddAccount(ctx context.Context, instance, token, displayName string) (accounts.Account, error)
	UpdateSelectedAccount(ctx context.Context, instance string, token *string) error
}
