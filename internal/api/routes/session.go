package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"Alcove/internal/api/handlers/session"
	"Alcove/internal/api/middleware"
)

// RegisterSessionRoutes registers the account and login endpoints.
// Credential endpoints get a strict per-IP budget to slow down stuffing.
func RegisterSessionRoutes(r chi.Router, handler *session.Handler) {
	authLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	r.With(authLimiter.Middleware).Post("/api/auth/login", handler.Login)
	r.With(authLimiter.Middleware).Post("/api/auth/mfa", handler.SubmitMFA)
	r.With(authLimiter.Middleware).Post("/api/auth/register", handler.Register)
	r.With(authLimiter.Middleware).Post("/api/auth/logout", handler.Logout)

	r.Get("/api/auth/captcha", handler.Captcha)
	r.Get("/api/auth/accounts", handler.Accounts)
	r.Post("/api/auth/select", handler.Select)
	r.Get("/api/instances", handler.Instances)
}
