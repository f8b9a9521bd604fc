package backends

import (
	"context"
	"net/http"
	"sync"

	"Alcove/internal/core/accounts"
)

// Provider builds adapters on demand. Software detection is probed once
// per instance and cached for the process lifetime; instances do not
// change software under a running gateway.
type Provider struct {
	accounts   *accounts.Service
	userAgent  string
	httpClient *http.Client

	mu     sync.Mutex
	probes map[string]*ProbeResult
}

func NewProvider(accountService *accounts.Service, userAgent string, httpClient *http.Client) *Provider {
	return &Provider{
		accounts:   accountService,
		userAgent:  userAgent,
		httpClient: httpClient,
		probes:     make(map[string]*ProbeResult),
	}
}

// ForSelected returns the adapter for the selected account, carrying its
// token when one exists.
func (p *Provider) ForSelected(ctx context.Context) (Backend, error) {
	account, ok := p.accounts.SelectedAccount()
	if !ok {
		return nil, accounts.ErrNoAccounts
	}
	return p.For(ctx, account.Instance, account.Token)
}

// For returns an adapter for an arbitrary instance, probing its software
// when it has not been seen before.
func (p *Provider) For(ctx context.Context, instance, token string) (Backend, error) {
	probe, err := p.probeInstance(ctx, instance)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Instance:   instance,
		Software:   probe.Software,
		Version:    probe.Version,
		Token:      token,
		UserAgent:  p.userAgent,
		HTTPClient: p.httpClient,
	})
}

// ProbeInstance reports what software an instance runs, from cache when
// possible.
func (p *Provider) ProbeInstance(ctx context.Context, instance string) (*ProbeResult, error) {
	return p.probeInstance(ctx, instance)
}

func (p *Provider) probeInstance(ctx context.Context, instance string) (*ProbeResult, error) {
	p.mu.Lock()
	cached, ok := p.probes[instance]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	probe, err := Probe(ctx, instance, p.userAgent, p.httpClient)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.probes[instance] = probe
	p.mu.Unlock()
	return probe, nil
}
