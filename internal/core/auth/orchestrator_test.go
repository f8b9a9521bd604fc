package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/core/accounts"
	"Alcove/internal/schemas"
)

type fakeAccountStore struct {
	mu       sync.Mutex
	loggedIn bool
	accounts map[string]string
	selected string
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]string)}
}

func (s *fakeAccountStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *fakeAccountStore) HasAccount(instance string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[instance]
	return ok
}

func (s *fakeAccountStore) AddAccount(_ context.Context, instance, token, displayName string) (accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[instance] = token
	return accounts.Account{Instance: instance, Token: token, DisplayName: displayName}, nil
}

func (s *fakeAccountStore) UpdateSelectedAccount(_ context.Context, instance string, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = instance
	if token != nil {
		s.accounts[instance] = *token
	}
	if tok, ok := s.accounts[instance]; ok && tok != "" {
		s.loggedIn = true
	}
	return nil
}

// stubBackend overrides the session operations and leaves the rest of the
// interface unimplemented.
type stubBackend struct {
	blueprint.Backend
	instance   string
	loginFn    func(schemas.Login) (*blueprint.LoginResponse, error)
	registerFn func(schemas.Register) (*blueprint.RegisterResponse, error)
}

func (b *stubBackend) Instance() string { return b.instance }

func (b *stubBackend) Login(_ context.Context, form schemas.Login) (*blueprint.LoginResponse, error) {
	return b.loginFn(form)
}

func (b *stubBackend) Register(_ context.Context, form schemas.Register) (*blueprint.RegisterResponse, error) {
	return b.registerFn(form)
}

func openSite() schemas.Site {
	return schemas.Site{Instance: "lemmy.example", RegistrationMode: schemas.RegistrationOpen}
}

func TestAuthenticateResolvesImmediatelyWhenLoggedIn(t *testing.T) {
	store := newFakeAccountStore()
	store.loggedIn = true
	o := NewOrchestrator(store)

	require.NoError(t, o.Authenticate(context.Background(), Options{}))
	_, pending := o.Pending()
	assert.False(t, pending)
}

func TestAuthenticateAddAccountBlocksDespiteSession(t *testing.T) {
	store := newFakeAccountStore()
	store.loggedIn = true
	o := NewOrchestrator(store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- o.Authenticate(context.Background(), Options{AddAccount: true})
	}()

	require.Eventually(t, func() bool {
		_, pending := o.Pending()
		return pending
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, o.Decline())
	assert.ErrorIs(t, <-errCh, ErrAuthDeclined)
}

func TestConcurrentAuthenticateShareOneResolution(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())

	const waiters = 5
	errCh := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			errCh <- o.Authenticate(context.Background(), Options{})
		}()
	}

	require.Eventually(t, func() bool {
		_, pending := o.Pending()
		return pending
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, o.Decline())
	for i := 0; i < waiters; i++ {
		assert.ErrorIs(t, <-errCh, ErrAuthDeclined)
	}

	// The slot is free again for the next request.
	assert.ErrorIs(t, o.Decline(), ErrNoPendingAuth)
}

func TestAuthenticateHonorsContextCancellation(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- o.Authenticate(ctx, Options{})
	}()

	require.Eventually(t, func() bool {
		_, pending := o.Pending()
		return pending
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestLoginSuccessLandsAccountAndResolvesPending(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- o.Authenticate(context.Background(), Options{})
	}()
	require.Eventually(t, func() bool {
		_, pending := o.Pending()
		return pending
	}, time.Second, 5*time.Millisecond)

	backend := &stubBackend{
		instance: "https://lemmy.example",
		loginFn: func(form schemas.Login) (*blueprint.LoginResponse, error) {
			return &blueprint.LoginResponse{Token: "jwt-abc"}, nil
		},
	}
	form := schemas.Login{Username: "alice", Password: "hunter2"}
	require.NoError(t, o.Login(context.Background(), backend, openSite(), form))

	assert.NoError(t, <-errCh)
	assert.Equal(t, "jwt-abc", store.accounts["https://lemmy.example"])
	assert.Equal(t, "https://lemmy.example", store.selected)
	assert.True(t, store.IsLoggedIn())
}

func TestLoginMFARetryReusesCredentials(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	var got []schemas.Login
	backend := &stubBackend{
		instance: "https://lemmy.example",
		loginFn: func(form schemas.Login) (*blueprint.LoginResponse, error) {
			got = append(got, form)
			if form.MFACode == nil {
				return nil, blueprint.ErrMFARequired
			}
			return &blueprint.LoginResponse{Token: "jwt-mfa"}, nil
		},
	}

	form := schemas.Login{Username: "alice", Password: "hunter2"}
	err := o.Login(context.Background(), backend, openSite(), form)
	require.ErrorIs(t, err, blueprint.ErrMFARequired)

	require.NoError(t, o.SubmitMFACode(context.Background(), "123456"))

	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[1].Username)
	assert.Equal(t, "hunter2", got[1].Password)
	require.NotNil(t, got[1].MFACode)
	assert.Equal(t, "123456", *got[1].MFACode)
	assert.True(t, store.IsLoggedIn())
}

func TestSubmitMFACodeRejectsMalformedCode(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())

	backend := &stubBackend{
		instance: "https://lemmy.example",
		loginFn: func(schemas.Login) (*blueprint.LoginResponse, error) {
			return nil, blueprint.ErrMFARequired
		},
	}
	err := o.Login(context.Background(), backend, openSite(), schemas.Login{Username: "a", Password: "b"})
	require.ErrorIs(t, err, blueprint.ErrMFARequired)

	assert.Error(t, o.SubmitMFACode(context.Background(), "12345"))
	assert.Error(t, o.SubmitMFACode(context.Background(), "12345a"))
}

func TestSubmitMFACodeWithoutChallenge(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())
	assert.ErrorIs(t, o.SubmitMFACode(context.Background(), "123456"), ErrNoPendingMFA)
}

func TestLoginOAuthOnlyRejected(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())

	site := schemas.Site{
		Instance:         "lemmy.example",
		RegistrationMode: schemas.RegistrationClosed,
		OAuthProviders: []schemas.OAuthProvider{
			{DisplayName: "GitHub"},
			{DisplayName: "Google"},
		},
	}
	backend := &stubBackend{instance: "https://lemmy.example"}

	err := o.Login(context.Background(), backend, site, schemas.Login{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrOAuthOnly)
}

func TestOAuthOnlyNeedsBothConditions(t *testing.T) {
	providers := []schemas.OAuthProvider{{DisplayName: "GitHub"}}

	assert.True(t, OAuthOnly(schemas.Site{RegistrationMode: schemas.RegistrationClosed, OAuthProviders: providers}))
	assert.False(t, OAuthOnly(schemas.Site{RegistrationMode: schemas.RegistrationOpen, OAuthProviders: providers}))
	assert.False(t, OAuthOnly(schemas.Site{RegistrationMode: schemas.RegistrationClosed}))
}

func TestLoginExistingAccountGetsTokenReplaced(t *testing.T) {
	store := newFakeAccountStore()
	store.accounts["https://lemmy.example"] = "stale"
	o := NewOrchestrator(store)

	backend := &stubBackend{
		instance: "https://lemmy.example",
		loginFn: func(schemas.Login) (*blueprint.LoginResponse, error) {
			return &blueprint.LoginResponse{Token: "fresh"}, nil
		},
	}
	require.NoError(t, o.Login(context.Background(), backend, openSite(), schemas.Login{Username: "alice", Password: "pw"}))

	assert.Equal(t, "fresh", store.accounts["https://lemmy.example"])
	assert.Len(t, store.accounts, 1)
}

func TestSignupClosedRegistration(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())
	backend := &stubBackend{instance: "https://lemmy.example"}

	site := schemas.Site{RegistrationMode: schemas.RegistrationClosed}
	_, err := o.Signup(context.Background(), backend, site, schemas.Register{Username: "a", Password: "b", RepeatPassword: "b"})
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestSignupApplicationRequiredNeedsAnswer(t *testing.T) {
	o := NewOrchestrator(newFakeAccountStore())
	site := schemas.Site{RegistrationMode: schemas.RegistrationRequireApplication}
	form := schemas.Register{Username: "a", Password: "b", RepeatPassword: "b"}

	backend := &stubBackend{
		instance: "https://lemmy.example",
		registerFn: func(schemas.Register) (*blueprint.RegisterResponse, error) {
			return &blueprint.RegisterResponse{RegistrationCreated: true}, nil
		},
	}

	_, err := o.Signup(context.Background(), backend, site, form)
	assert.ErrorIs(t, err, ErrApplicationRequired)

	answer := "let me in"
	form.Answer = &answer
	result, err := o.Signup(context.Background(), backend, site, form)
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.RegistrationCreated)
}

func TestSignupWithTokenLogsIn(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	token := "jwt-new"
	backend := &stubBackend{
		instance: "https://lemmy.example",
		registerFn: func(schemas.Register) (*blueprint.RegisterResponse, error) {
			return &blueprint.RegisterResponse{Token: &token}, nil
		},
	}

	result, err := o.Signup(context.Background(), backend, openSite(), schemas.Register{Username: "bob", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)
	assert.True(t, result.LoggedIn)
	assert.Equal(t, "jwt-new", store.accounts["https://lemmy.example"])
	assert.True(t, store.IsLoggedIn())
}

func TestSignupVerifyEmailPending(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	backend := &stubBackend{
		instance: "https://lemmy.example",
		registerFn: func(schemas.Register) (*blueprint.RegisterResponse, error) {
			return &blueprint.RegisterResponse{VerifyEmailSent: true}, nil
		},
	}

	result, err := o.Signup(context.Background(), backend, openSite(), schemas.Register{Username: "bob", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.VerifyEmailSent)
	assert.False(t, store.IsLoggedIn())
}

func TestCheckPrivateInstanceTriggersAuthentication(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	site := schemas.Site{Instance: "private.example", PrivateInstance: true}
	errCh := make(chan error, 1)
	go func() {
		errCh <- o.CheckPrivateInstance(context.Background(), site)
	}()

	require.Eventually(t, func() bool {
		opts, pending := o.Pending()
		return pending && opts.Instance == "private.example" && opts.Reason != ""
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, o.Decline())
	assert.ErrorIs(t, <-errCh, ErrAuthDeclined)
}

func TestCheckPrivateInstanceNoopWhenPublicOrLoggedIn(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)
	require.NoError(t, o.CheckPrivateInstance(context.Background(), schemas.Site{PrivateInstance: false}))

	store.loggedIn = true
	require.NoError(t, o.CheckPrivateInstance(context.Background(), schemas.Site{PrivateInstance: true}))
}

func TestContinueAsGuestResolvesPending(t *testing.T) {
	store := newFakeAccountStore()
	o := NewOrchestrator(store)

	errCh := make(chan error, 1)
	go func() {
		errCh <- o.Authenticate(context.Background(), Options{})
	}()
	require.Eventually(t, func() bool {
		_, pending := o.Pending()
		return pending
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, o.ContinueAsGuest(context.Background(), "https://other.example"))
	assert.NoError(t, <-errCh)
	assert.Equal(t, "https://other.example", store.selected)
}
