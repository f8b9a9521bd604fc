package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"Alcove/internal/api/handlers/authredirect"
	"Alcove/internal/api/middleware"
)

// RegisterOAuthRoutes registers the browser-facing OAuth endpoints with a
// strict per-IP budget; every begin persists a state record, so an
// unthrottled client could grow the table without bound.
func RegisterOAuthRoutes(r chi.Router, handler *authredirect.Handler) {
	oauthLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	r.With(oauthLimiter.Middleware).Get("/oauth/login", handler.Begin)
	r.With(oauthLimiter.Middleware).Get("/oauth/callback", handler.Callback)
}
