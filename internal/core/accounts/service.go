// Package accounts holds the multi-account session store: an ordered
// list of accounts with exactly one selected whenever the list is
// non-empty, rehydrated from durable storage at startup and persisted on
// every mutation.
package accounts

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Service struct {
	repo Repository

	mu       sync.Mutex
	accounts []Account
	selected int
}

// NewService rehydrates the store. An empty store is seeded with a guest
// account on defaultInstance so there is always a selected session to
// issue guest requests from.
func NewService(ctx context.Context, repo Repository, defaultInstance string) (*Service, error) {
	stored, selected, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	s := &Service{repo: repo, accounts: stored, selected: selected}
	if len(s.accounts) == 0 {
		s.accounts = []Account{{
			Instance:    defaultInstance,
			DisplayName: "Guest",
			CreatedAt:   time.Now().UTC(),
		}}
		s.selected = 0
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}
	if s.selected < 0 || s.selected >= len(s.accounts) {
		s.selected = 0
	}
	return s, nil
}

// AddAccount appends an account. Selection only moves to it when it is
// the first account in the store.
func (s *Service) AddAccount(ctx context.Context, instance, token, displayName string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := Account{
		Instance:    instance,
		Token:       token,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	wasEmpty := len(s.accounts) == 0
	s.accounts = append(s.accounts, account)
	if wasEmpty {
		s.selected = 0
	}
	if err := s.persist(ctx); err != nil {
		return Account{}, err
	}
	return account, nil
}

// UpdateSelectedAccount switches selection to the stored account matching
// instance, or, when none matches, repoints the currently selected
// account at instance. A non-nil token also replaces the target's token.
func (s *Service) UpdateSelectedAccount(ctx context.Context, instance string, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) == 0 {
		return ErrNoAccounts
	}

	target := -1
	for i, account := range s.accounts {
		if account.Instance == instance {
			target = i
			break
		}
	}
	if target >= 0 {
		s.selected = target
	} else {
		s.accounts[s.selected].Instance = instance
	}
	if token != nil {
		s.accounts[s.selected].Token = *token
	}
	return s.persist(ctx)
}

// Logout clears the selected account's token, leaving a guest entry for
// the same instance.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) == 0 {
		return ErrNoAccounts
	}
	s.accounts[s.selected].Token = ""
	return s.persist(ctx)
}

// RemoveAccount deletes the account at index. When the selected account
// is removed, selection falls back to the first remaining account.
func (s *Service) RemoveAccount(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.accounts) {
		return ErrAccountNotFound
	}
	s.accounts = append(s.accounts[:index], s.accounts[index+1:]...)
	switch {
	case len(s.accounts) == 0:
		s.selected = 0
	case index < s.selected:
		s.selected--
	case index == s.selected:
		s.selected = 0
	}
	return s.persist(ctx)
}

// SelectedAccount returns the active account. ok is false when the store
// is empty.
func (s *Service) SelectedAccount() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.accounts) == 0 {
		return Account{}, false
	}
	return s.accounts[s.selected], true
}

// Accounts returns a copy of the stored list in order.
func (s *Service) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// HasAccount reports whether any stored account lives on instance.
func (s *Service) HasAccount(instance string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Instance == instance {
			return true
		}
	}
	return false
}

// IsLoggedIn reports whether the selected account carries a token.
func (s *Service) IsLoggedIn() bool {
	account, ok := s.SelectedAccount()
	return ok && !account.IsGuest()
}

// CachePrefixer returns a pure function namespacing cache keys by the
// account selected at the time of the call. Guests on the same instance
// share a namespace.
func (s *Service) CachePrefixer() Prefixer {
	account, _ := s.SelectedAccount()
	identity := account.DisplayName
	if account.IsGuest() {
		identity = "guest"
	}
	prefix := fmt.Sprintf("%s|%s|", account.Instance, identity)
	return func(key string) string {
		return prefix + key
	}
}

// persist writes a snapshot; callers hold s.mu.
func (s *Service) persist(ctx context.Context) error {
	snapshot := make([]Account, len(s.accounts))
	copy(snapshot, s.accounts)
	if err := s.repo.Save(ctx, snapshot, s.selected); err != nil {
		return fmt.Errorf("saving accounts: %w", err)
	}
	return nil
}
