package session

import (
	"log/slog"
	"net/http"

	"Alcove/internal/api/handlers"
	"Alcove/internal/schemas"
)

type accountsResponse struct {
	Accounts []accountView `json:"accounts"`
	Selected int           `json:"selected"`
}

// accountView hides the token but tells the client whether one exists.
type accountView struct {
	Instance    string `json:"instance"`
	DisplayName string `json:"displayName"`
	LoggedIn    bool   `json:"loggedIn"`
}

// Accounts handles GET /api/auth/accounts
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	list := h.accounts.Accounts()
	selected, _ := h.accounts.SelectedAccount()

	resp := accountsResponse{Accounts: make([]accountView, len(list))}
	for i, account := range list {
		resp.Accounts[i] = accountView{
			Instance:    account.Instance,
			DisplayName: account.DisplayName,
			LoggedIn:    !account.IsGuest(),
		}
		if account.Instance == selected.Instance {
			resp.Selected = i
		}
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	Instance string `json:"instance"`
}

// Select handles POST /api/auth/select, switching the selected account.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if req.Instance == "" {
		handlers.WriteError(w, http.StatusBadRequest, "invalid_input", "instance is required")
		return
	}

	if err := h.accounts.UpdateSelectedAccount(r.Context(), req.Instance, nil); err != nil {
		handlers.HandleError(w, err)
		return
	}

	account, _ := h.accounts.SelectedAccount()
	handlers.WriteJSON(w, http.StatusOK, account)
}

// Logout handles POST /api/auth/logout. The remote session is revoked
// best-effort; the local token is cleared regardless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.accounts.IsLoggedIn() {
		if backend, err := h.backends.ForSelected(ctx); err == nil {
			if err := backend.Logout(ctx); err != nil {
				slog.Warn("remote logout failed", slog.String("error", err.Error()))
			}
		}
	}

	if err := h.accounts.Logout(ctx); err != nil {
		handlers.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Instances handles GET /api/instances, the login directory. An optional
// q fuzzy-matches host and name; software filters by family; url probes
// an arbitrary instance and merges it into the results.
func (h *Handler) Instances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if raw := query.Get("url"); raw != "" {
		if _, err := h.directory.Probe(r.Context(), raw); err != nil {
			handlers.HandleError(w, err)
			return
		}
	}

	results := h.directory.Search(query.Get("q"), schemas.Software(query.Get("software")))
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"instances": results})
}
