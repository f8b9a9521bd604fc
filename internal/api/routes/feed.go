package routes

import (
	"github.com/go-chi/chi/v5"

	"Alcove/internal/api/handlers/feed"
)

// RegisterFeedRoutes registers the read-only proxy over the selected
// account's backend.
func RegisterFeedRoutes(r chi.Router, handler *feed.Handler) {
	r.Get("/api/feed/posts", handler.Posts)
	r.Get("/api/feed/post", handler.Post)
	r.Get("/api/comments", handler.Comments)
	r.Get("/api/site", handler.Site)
	r.Get("/api/search", handler.Search)
}
