package session

import (
	"net/http"

	"Alcove/internal/api/handlers"
	"Alcove/internal/schemas"
)

type loginRequest struct {
	Instance string  `json:"instance"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	MFACode  *string `json:"mfaCode,omitempty"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
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

	form := schemas.Login{Username: req.Username, Password: req.Password, MFACode: req.MFACode}
	if err := h.orchestrator.Login(ctx, backend, site.Site, form); err != nil {
		handlers.HandleError(w, err)
		return
	}

	account, _ := h.accounts.SelectedAccount()
	handlers.WriteJSON(w, http.StatusOK, account)
}

type mfaRequest struct {
	Code string `json:"code"`
}

// SubmitMFA handles POST /api/auth/mfa, resubmitting the pending login
// with a one-time code.
func (h *Handler) SubmitMFA(w http.ResponseWriter, r *http.Request) {
	var req mfaRequest
	if err := decode(r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if err := h.orchestrator.SubmitMFACode(r.Context(), req.Code); err != nil {
		handlers.HandleError(w, err)
		return
	}

	account, _ := h.accounts.SelectedAccount()
	handlers.WriteJSON(w, http.StatusOK, account)
}
