package auth

import (
	"context"

	"Alcove/internal/core/accounts"
)

// AccountStore is the slice of the session store the orchestrator needs.
type AccountStore interface {
	IsLoggedIn() bool
	HasAccount(instance string) bool
	AddAccount(ctx context.Context, instance, token, displayName string) (accounts.Account, error)
	UpdateSelectedAccount(ctx context.Context, instance string, token *string) error
}
