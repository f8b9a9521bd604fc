// Package authredirect hosts the browser-facing OAuth routes: the
// redirect out to a provider and the callback the provider sends the
// browser back to.
package authredirect

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"

	"Alcove/internal/api/handlers"
	"Alcove/internal/backends"
	"Alcove/internal/core/oauth"
	"Alcove/internal/schemas"
)

const (
	sessionName = "alcove_oauth"
	stateKey    = "state"
)

// Handler drives the OAuth begin/callback flow over HTTP.
type Handler struct {
	service  *oauth.Service
	backends *backends.Provider
	cookies  *sessions.CookieStore
}

// NewHandler creates a new OAuth redirect handler
func NewHandler(service *oauth.Service, provider *backends.Provider, cookies *sessions.CookieStore) *Handler {
	return &Handler{
		service:  service,
		backends: provider,
		cookies:  cookies,
	}
}

// Begin handles GET /oauth/login?instance=...&provider_id=...
// It binds a fresh state to the browser session cookie and redirects the
// browser to the provider's authorize URL.
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	instance := query.Get("instance")
	if instance == "" {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", "instance parameter is required")
		return
	}
	providerID, err := strconv.ParseInt(query.Get("provider_id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", "provider_id parameter is required")
		return
	}

	backend, err := h.backends.For(ctx, instance, "")
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	site, err := backend.GetSite(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	var provider *schemas.OAuthProvider
	for i := range site.Site.OAuthProviders {
		if site.Site.OAuthProviders[i].ID == providerID {
			provider = &site.Site.OAuthProviders[i]
			break
		}
	}
	if provider == nil {
		handlers.WriteError(w, http.StatusNotFound, "not_found", "no such OAuth provider on this instance")
		return
	}

	authorizeURL, state, err := h.service.Begin(ctx, instance, *provider)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	session, _ := h.cookies.Get(r, sessionName)
	session.Values[stateKey] = state
	session.Options.HttpOnly = true
	session.Options.SameSite = http.SameSiteLaxMode
	session.Options.MaxAge = 300
	if err := session.Save(r, w); err != nil {
		slog.Error("failed to save oauth session cookie", slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "internal", "could not bind browser session")
		return
	}

	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// Callback handles GET /oauth/callback?code=...&state=...
// Outcomes are reported as redirects to frontend routes; the callback is
// a browser navigation, not an API call.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	session, _ := h.cookies.Get(r, sessionName)
	sessionState, _ := session.Values[stateKey].(string)

	// The state is single-use either way; drop it from the cookie.
	delete(session.Values, stateKey)
	if err := session.Save(r, w); err != nil {
		slog.Warn("failed to clear oauth session cookie", slog.String("error", err.Error()))
	}

	result, err := h.service.Callback(r.Context(), query.Get("code"), query.Get("state"), sessionState)
	switch {
	case err == nil:
		slog.Info("oauth login landed",
			slog.String("instance", result.Instance),
			slog.String("username", result.Username))
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, oauth.ErrVerifyEmailSent):
		http.Redirect(w, r, "/login?notice=verify-email", http.StatusFound)
	case errors.Is(err, oauth.ErrRegistrationPending):
		http.Redirect(w, r, "/login?notice=registration-pending", http.StatusFound)
	default:
		slog.Warn("oauth callback failed", slog.String("error", err.Error()))
		http.Redirect(w, r, "/login?error=oauth-failed", http.StatusFound)
	}
}
