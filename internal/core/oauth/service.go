// Package oauth runs the authorization-code flow against an instance's
// external identity providers: it issues the CSRF state before redirecting
// out, and on return validates the state, exchanges the code for a session
// token and lands the token in the account store.
package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"Alcove/internal/schemas"
)

// stateTTL is how long an authorization attempt may take end to end.
const stateTTL = 5 * time.Minute

type Service struct {
	states     StateStore
	accounts   AccountStore
	httpClient *http.Client
	userAgent  string
	// publicURL is this gateway's externally reachable base URL; the
	// redirect URI is publicURL + "/oauth/callback" at both steps.
	publicURL string
	now       func() time.Time
}

func NewService(states StateStore, accountStore AccountStore, httpClient *http.Client, publicURL, userAgent string) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		states:     states,
		accounts:   accountStore,
		httpClient: httpClient,
		userAgent:  userAgent,
		publicURL:  publicURL,
		now:        time.Now,
	}
}

func (s *Service) redirectURI() string {
	return s.publicURL + "/oauth/callback"
}

// Begin persists a pending authorization and returns the provider URL to
// redirect the browser to, along with the state bound to this attempt.
func (s *Service) Begin(ctx context.Context, instance string, provider schemas.OAuthProvider) (authorizeURL, state string, err error) {
	state = uuid.NewString()
	record := StateRecord{
		State:       state,
		ProviderID:  provider.ID,
		Instance:    instance,
		RedirectURI: s.redirectURI(),
		ExpiresAt:   s.now().Add(stateTTL).UTC(),
	}
	if err := s.states.Create(ctx, record); err != nil {
		return "", "", fmt.Errorf("persisting oauth state: %w", err)
	}

	query := url.Values{
		"client_id":     {provider.ClientID},
		"redirect_uri":  {record.RedirectURI},
		"response_type": {"code"},
		"scope":         {provider.Scopes},
		"state":         {state},
	}
	return provider.AuthorizationEndpoint + "?" + query.Encode(), state, nil
}

// CallbackResult is the landed session after a successful exchange.
type CallbackResult struct {
	Instance string
	Username string
}

// Callback validates the provider redirect and exchanges the code for a
// token. sessionState is the state this browser session started with; a
// session that carries none fails the CSRF check like any other mismatch.
// Whatever the outcome, a pending record that was looked up is deleted:
// state tokens are single-use, a failed callback cannot be replayed.
func (s *Service) Callback(ctx context.Context, code, state, sessionState string) (*CallbackResult, error) {
	if code == "" {
		return nil, ErrAuthorizationDenied
	}
	if state == "" {
		return nil, ErrStateMissing
	}

	record, err := s.states.Get(ctx, state)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, ErrStateMissing
		}
		return nil, fmt.Errorf("loading oauth state: %w", err)
	}
	defer func() {
		if err := s.states.Delete(context.WithoutCancel(ctx), state); err != nil {
			slog.Error("failed to delete oauth state", "error", err)
		}
	}()

	if sessionState != state {
		return nil, ErrCsrfMismatch
	}
	if s.now().After(record.ExpiresAt) {
		return nil, ErrStateExpired
	}

	token, username, err := s.exchange(ctx, record, code)
	if err != nil {
		return nil, err
	}

	if username == "" {
		if u, err := url.Parse(record.Instance); err == nil && u.Host != "" {
			username = u.Host
		} else {
			username = record.Instance
		}
	}

	if s.accounts.HasAccount(record.Instance) {
		if err := s.accounts.UpdateSelectedAccount(ctx, record.Instance, &token); err != nil {
			return nil, fmt.Errorf("updating account: %w", err)
		}
	} else {
		if _, err := s.accounts.AddAccount(ctx, record.Instance, token, username); err != nil {
			return nil, fmt.Errorf("adding account: %w", err)
		}
		if err := s.accounts.UpdateSelectedAccount(ctx, record.Instance, nil); err != nil {
			return nil, fmt.Errorf("selecting account: %w", err)
		}
	}
	return &CallbackResult{Instance: record.Instance, Username: username}, nil
}

type authenticateResponse struct {
	JWT                 *string `json:"jwt"`
	Username            string  `json:"username"`
	VerifyEmailSent     bool    `json:"verify_email_sent"`
	RegistrationCreated bool    `json:"registration_created"`
	Error               string  `json:"error"`
}

// exchange trades the authorization code for a session token at the
// instance's token-exchange endpoint.
func (s *Service) exchange(ctx context.Context, record *StateRecord, code string) (token, username string, err error) {
	payload, err := json.Marshal(map[string]any{
		"code":              code,
		"oauth_provider_id": record.ProviderID,
		"redirect_uri":      record.RedirectURI,
		"show_nsfw":         false,
	})
	if err != nil {
		return "", "", fmt.Errorf("encoding exchange request: %w", err)
	}

	endpoint := record.Instance + "/api/v4/oauth/authenticate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("building exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("token exchange: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("reading exchange response: %w", err)
	}

	var out authenticateResponse
	_ = json.Unmarshal(raw, &out)

	if out.JWT == nil || *out.JWT == "" {
		switch {
		case out.VerifyEmailSent:
			return "", "", ErrVerifyEmailSent
		case out.RegistrationCreated:
			return "", "", ErrRegistrationPending
		case out.Error != "":
			return "", "", fmt.Errorf("token exchange rejected: %s", out.Error)
		default:
			return "", "", fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
		}
	}
	return *out.JWT, out.Username, nil
}
