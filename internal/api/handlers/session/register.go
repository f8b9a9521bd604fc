package session

import (
	"net/http"

	"Alcove/internal/api/handlers"
	"Alcove/internal/schemas"
)

type registerRequest struct {
	Instance string `json:"instance"`
	schemas.Register
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := decode(r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if req.Instance == "" {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", "instance is required")
		return
	}

	backend, err := h.backends.For(ctx, req.Instance, "")
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	site, err := backend.GetSite(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	result, err := h.orchestrator.Signup(ctx, backend, site.Site, req.Register)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// Captcha handles GET /api/auth/captcha?instance=...
func (h *Handler) Captcha(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	instance := r.URL.Query().Get("instance")
	if instance == "" {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", "instance parameter is required")
		return
	}

	backend, err := h.backends.For(ctx, instance, "")
	if err != nil {
		handlers.HandleError(w, err)
		return
	}
	captcha, err := backend.GetCaptcha(ctx)
	if err != nil {
		handlers.HandleError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, captcha)
}
