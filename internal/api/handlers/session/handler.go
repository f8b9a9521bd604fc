// Package session exposes the account and login surface of the gateway.
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"Alcove/internal/backends"
	"Alcove/internal/core/accounts"
	"Alcove/internal/core/auth"
)

const maxBodySize = 1 << 20

// Handler handles login, registration and account selection.
type Handler struct {
	orchestrator *auth.Orchestrator
	accounts     *accounts.Service
	backends     *backends.Provider
	directory    *auth.Directory
}

// NewHandler creates a new session handler
func NewHandler(orchestrator *auth.Orchestrator, accountService *accounts.Service, provider *backends.Provider, directory *auth.Directory) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		accounts:     accountService,
		backends:     provider,
		directory:    directory,
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
