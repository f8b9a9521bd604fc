package auth

import "errors"

var (
	// ErrAuthDeclined means the pending authentication was dismissed by
	// the user. It is a final answer, not a transient failure.
	ErrAuthDeclined = errors.New("authentication declined")

	// ErrOAuthOnly means the instance only admits sessions through its
	// external identity providers; password login is not offered.
	ErrOAuthOnly = errors.New("instance only supports oauth login")

	// ErrNoPendingAuth is returned when a login, signup or dismissal
	// arrives with no authentication in progress.
	ErrNoPendingAuth = errors.New("no authentication in progress")

	// ErrNoPendingMFA is returned when a one-time code arrives without a
	// login waiting for one.
	ErrNoPendingMFA = errors.New("no login awaiting a one-time code")

	// ErrRegistrationClosed means the instance does not accept signups.
	ErrRegistrationClosed = errors.New("registration is closed on this instance")

	// ErrApplicationRequired means the instance requires an answer to its
	// application question before a signup is accepted.
	ErrApplicationRequired = errors.New("an application answer is required")
)
