package oauth

import "errors"

// Callback failure modes. CSRF and expiry failures are fatal for the
// attempt; the pending outcomes are prompts, not errors in the retryable
// sense.
var (
	// ErrAuthorizationDenied means the provider redirected back without a
	// code; the user declined (or the provider failed) upstream.
	ErrAuthorizationDenied = errors.New("authorization denied by provider")

	// ErrStateMissing means the callback carried no state, or no pending
	// authorization matches it.
	ErrStateMissing = errors.New("no pending authorization for state")

	// ErrCsrfMismatch means the callback state does not match the state
	// this browser session started with.
	ErrCsrfMismatch = errors.New("state does not match pending authorization")

	// ErrStateExpired means the pending authorization outlived its window.
	ErrStateExpired = errors.New("authorization attempt expired")

	// ErrVerifyEmailSent means the instance created the account but wants
	// the email address verified before issuing a session.
	ErrVerifyEmailSent = errors.New("verification email sent")

	// ErrRegistrationPending means the instance queued the registration
	// for admin approval.
	ErrRegistrationPending = errors.New("registration awaiting approval")

	// ErrStateNotFound is the store-level sentinel for an unknown state.
	ErrStateNotFound = errors.New("oauth state not found")
)
