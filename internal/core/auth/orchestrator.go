// Package auth coordinates how a session comes to exist: it gates
// operations that need one behind a single pending authentication at a
// time, runs the password and signup flows against a backend, and lands
// issued tokens in the account store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/schemas"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

// Options shapes one authentication request.
type Options struct {
	// AddAccount runs the flow even when a session already exists.
	AddAccount bool
	// Instance preselects the instance in the prompt.
	Instance string
	// Reason tells the user why they are being asked (e.g. the instance
	// is private).
	Reason string
}

type pendingAuth struct {
	opts Options
	done chan struct{}
	err  error
}

// mfaState retains the credentials of a login that was interrupted by an
// MFA challenge so the one-time code can be resubmitted with them.
type mfaState struct {
	backend blueprint.Backend
	form    schemas.Login
}

type Orchestrator struct {
	accounts AccountStore

	mu      sync.Mutex
	pending *pendingAuth
	mfa     *mfaState
}

func NewOrchestrator(accountStore AccountStore) *Orchestrator {
	return &Orchestrator{accounts: accountStore}
}

// Authenticate blocks until a session exists or the user declines. When
// already logged in (and not adding an account) it resolves immediately.
// Concurrent callers share one pending authentication: there is a single
// prompt, and every waiter gets its resolution.
func (o *Orchestrator) Authenticate(ctx context.Context, opts Options) error {
	if o.accounts.IsLoggedIn() && !opts.AddAccount {
		return nil
	}

	o.mu.Lock()
	if o.pending == nil {
		o.pending = &pendingAuth{opts: opts, done: make(chan struct{})}
	}
	pending := o.pending
	o.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-pending.done:
		return pending.err
	}
}

// Pending reports whether an authentication is waiting on the user, and
// with what options.
func (o *Orchestrator) Pending() (Options, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return Options{}, false
	}
	return o.pending.opts, true
}

// Decline dismisses the pending authentication. Every waiter receives
// ErrAuthDeclined.
func (o *Orchestrator) Decline() error {
	if !o.resolve(ErrAuthDeclined) {
		return ErrNoPendingAuth
	}
	return nil
}

// resolve wakes all waiters with err and clears the slot. Returns false
// when nothing was pending.
func (o *Orchestrator) resolve(err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mfa = nil
	if o.pending == nil {
		return false
	}
	o.pending.err = err
	close(o.pending.done)
	o.pending = nil
	return true
}

// CheckPrivateInstance starts authentication when the instance refuses
// guests and no session exists.
func (o *Orchestrator) CheckPrivateInstance(ctx context.Context, site schemas.Site) error {
	if !site.PrivateInstance || o.accounts.IsLoggedIn() {
		return nil
	}
	return o.Authenticate(ctx, Options{
		Instance: site.Instance,
		Reason:   "this instance is private",
	})
}

// OAuthOnly reports whether the site admits sessions only through its
// identity providers: it offers providers and has password registration
// closed.
func OAuthOnly(site schemas.Site) bool {
	return len(site.OAuthProviders) > 0 && site.RegistrationMode == schemas.RegistrationClosed
}

// Login runs the password flow. On an MFA challenge it retains the
// credentials and returns blueprint.ErrMFARequired; the caller collects a
// six-digit code and calls SubmitMFACode, which resubmits the same
// credentials. A successful login lands the token and resolves the
// pending authentication, if any.
func (o *Orchestrator) Login(ctx context.Context, backend blueprint.Backend, site schemas.Site, form schemas.Login) error {
	if OAuthOnly(site) {
		return ErrOAuthOnly
	}
	if err := form.Validate(); err != nil {
		return err
	}
	return o.login(ctx, backend, form)
}

func (o *Orchestrator) login(ctx context.Context, backend blueprint.Backend, form schemas.Login) error {
	resp, err := backend.Login(ctx, form)
	if err != nil {
		if errors.Is(err, blueprint.ErrMFARequired) {
			o.mu.Lock()
			o.mfa = &mfaState{backend: backend, form: form}
			o.mu.Unlock()
		}
		return err
	}
	if err := o.landToken(ctx, backend.Instance(), resp.Token, form.Username); err != nil {
		return err
	}
	o.resolve(nil)
	return nil
}

// SubmitMFACode resubmits the retained login with a one-time code.
func (o *Orchestrator) SubmitMFACode(ctx context.Context, code string) error {
	o.mu.Lock()
	mfa := o.mfa
	o.mu.Unlock()
	if mfa == nil {
		return ErrNoPendingMFA
	}
	if err := validation.Validate(code, validation.Required, validation.Match(sixDigits).Error("one-time code must be 6 digits")); err != nil {
		return err
	}
	form := mfa.form
	form.MFACode = &code
	return o.login(ctx, mfa.backend, form)
}

// SignupResult distinguishes a session being issued immediately from the
// pending outcomes.
type SignupResult struct {
	LoggedIn            bool
	VerifyEmailSent     bool
	RegistrationCreated bool
}

// Signup runs the registration flow, gated by the site's registration
// mode. A token in the response lands a session immediately; otherwise
// the instance is waiting on email verification or an admin decision.
func (o *Orchestrator) Signup(ctx context.Context, backend blueprint.Backend, site schemas.Site, form schemas.Register) (*SignupResult, error) {
	if site.RegistrationMode == schemas.RegistrationClosed {
		return nil, ErrRegistrationClosed
	}
	if site.RegistrationMode == schemas.RegistrationRequireApplication && (form.Answer == nil || *form.Answer == "") {
		return nil, ErrApplicationRequired
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	resp, err := backend.Register(ctx, form)
	if err != nil {
		return nil, err
	}
	if resp.Token != nil && *resp.Token != "" {
		if err := o.landToken(ctx, backend.Instance(), *resp.Token, form.Username); err != nil {
			return nil, err
		}
		o.resolve(nil)
		return &SignupResult{LoggedIn: true}, nil
	}
	return &SignupResult{
		VerifyEmailSent:     resp.VerifyEmailSent,
		RegistrationCreated: resp.RegistrationCreated,
	}, nil
}

// ContinueAsGuest resolves the pending authentication without a session,
// switching the selected account to the chosen instance.
func (o *Orchestrator) ContinueAsGuest(ctx context.Context, instance string) error {
	if err := o.accounts.UpdateSelectedAccount(ctx, instance, nil); err != nil {
		return err
	}
	o.resolve(nil)
	return nil
}

// landToken upserts an account for instance carrying token and selects it.
func (o *Orchestrator) landToken(ctx context.Context, instance, token, displayName string) error {
	if o.accounts.HasAccount(instance) {
		if err := o.accounts.UpdateSelectedAccount(ctx, instance, &token); err != nil {
			return fmt.Errorf("updating account: %w", err)
		}
		return nil
	}
	if _, err := o.accounts.AddAccount(ctx, instance, token, displayName); err != nil {
		return fmt.Errorf("adding account: %w", err)
	}
	if err := o.accounts.UpdateSelectedAccount(ctx, instance, nil); err != nil {
		return fmt.Errorf("selecting account: %w", err)
	}
	return nil
}
