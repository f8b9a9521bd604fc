package accounts

import "context"

// Repository persists the ordered account list and the selected index.
// Writes are last-write-wins; the service serializes its own mutations.
type Repository interface {
	// Load returns the stored accounts in order and the selected index.
	// An empty store returns a nil slice and index 0.
	Load(ctx context.Context) ([]Account, int, error)

	// Save replaces the stored list and selected index atomically.
	Save(ctx context.Context, accounts []Account, selected int) error
}
