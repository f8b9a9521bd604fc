// Package feed proxies the normalized read operations of the selected
// account's backend.
package feed

import (
	"net/http"

	"Alcove/internal/api/handlers"
	"Alcove/internal/backends"
	"Alcove/internal/schemas"
)

// Handler serves feed, site and search reads.
type Handler struct {
	backends *backends.Provider
}

// NewHandler creates a new feed handler
func NewHandler(provider *backends.Provider) *Handler {
	return &Handler{backends: provider}
}

// Posts handles GET /api/feed/posts
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	backend, err := h.backends.ForSelected(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	form := schemas.GetPosts{
		Sort:          schemas.PostSort(query.Get("sort")),
		Type:          schemas.ListingType(query.Get("type")),
		CommunitySlug: query.Get("community"),
		PageCursor:    query.Get("cursor"),
		ShowRead:      query.Get("showRead") == "true",
	}

	resp, err := backend.GetPosts(ctx, form)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Post handles GET /api/feed/post?apId=...
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form := schemas.GetPost{ApID: r.URL.Query().Get("apId")}
	if err := form.Validate(); err != nil {
		handlers.HandleError(w, err)
		return
	}

	backend, err := h.backends.ForSelected(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	resp, err := backend.GetPost(ctx, form)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Comments handles GET /api/comments?postApId=...
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	backend, err := h.backends.ForSelected(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	form := schemas.GetComments{
		PostApID:   query.Get("postApId"),
		Sort:       schemas.CommentSort(query.Get("sort")),
		PageCursor: query.Get("cursor"),
	}

	resp, err := backend.GetComments(ctx, form)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Site handles GET /api/site for the selected account's instance.
func (h *Handler) Site(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	backend, err := h.backends.ForSelected(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	resp, err := backend.GetSite(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/search?q=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	form := schemas.Search{
		Q:             query.Get("q"),
		Type:          schemas.SearchType(query.Get("type")),
		CommunitySlug: query.Get("community"),
		PageCursor:    query.Get("cursor"),
	}
	if err := form.Validate(); err != nil {
		handlers.HandleError(w, err)
		return
	}

	backend, err := h.backends.ForSelected(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	resp, err := backend.Search(ctx, form)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}
