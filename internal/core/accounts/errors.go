package accounts

import "errors"

var (
	// ErrAccountNotFound is returned when a lookup by instance matches no
	// stored account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoAccounts is returned when an operation needs a selected
	// account and the store is empty.
	ErrNoAccounts = errors.New("no accounts in store")
)
