// Package piefed adapts PieFed's alpha HTTP API onto the normalized
// operation contract. The alpha API deliberately mirrors the Lemmy v3
// wire shapes under a different path prefix, so the adapter delegates the
// protocol work and overrides what PieFed does not offer.
package piefed

import (
	"context"
	"net/http"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/backends/lemmyv3"
	"Alcove/internal/schemas"
)

const apiRoot = "/api/alpha"

// Adapter implements blueprint.Backend against one PieFed instance.
type Adapter struct {
	*lemmyv3.Adapter
}

var _ blueprint.Backend = (*Adapter)(nil)

// New creates an adapter bound to an instance. token may be empty for a
// guest session.
func New(instance, userAgent, token string, httpClient *http.Client) (*Adapter, error) {
	inner, err := lemmyv3.NewWithAPIRoot(instance, userAgent, token, httpClient, apiRoot)
	if err != nil {
		return nil, err
	}
	return &Adapter{Adapter: inner}, nil
}

func (a *Adapter) Software() schemas.Software { return schemas.SoftwarePieFed }
func (a *Adapter) Family() blueprint.Family   { return blueprint.FamilyPieFed }

// PieFed has no self-service registration or captcha endpoints; accounts
// are created through the web UI or OAuth.

func (a *Adapter) Register(ctx context.Context, form schemas.Register) (*blueprint.RegisterResponse, error) {
	return nil, blueprint.ErrNotImplemented
}

func (a *Adapter) GetCaptcha(ctx context.Context) (*blueprint.Captcha, error) {
	return nil, blueprint.ErrNotImplemented
}

func (a *Adapter) GetSite(ctx context.Context) (*blueprint.GetSiteResponse, error) {
	resp, err := a.Adapter.GetSite(ctx)
	if err != nil {
		return nil, err
	}
	resp.Site.Software = schemas.SoftwarePieFed
	return resp, nil
}
