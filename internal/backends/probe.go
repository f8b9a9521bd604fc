package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/schemas"
)

const probeBodyLimit = 1 << 20

// ProbeResult is what an instance reports about itself.
type ProbeResult struct {
	Software schemas.Software
	Version  string
}

// Probe asks an instance what software it runs via the NodeInfo
// discovery protocol, which both Lemmy and PieFed serve. Unknown software
// is reported as-is; FamilyFor decides whether an adapter exists for it.
func Probe(ctx context.Context, instance, userAgent string, httpClient *http.Client) (*ProbeResult, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var discovery struct {
		Links []struct {
			Rel  string `json:"rel"`
			Href string `json:"href"`
		} `json:"links"`
	}
	if err := probeGet(ctx, httpClient, userAgent, strings.TrimRight(instance, "/")+"/.well-known/nodeinfo", &discovery); err != nil {
		return nil, err
	}

	href := ""
	for _, link := range discovery.Links {
		if strings.HasPrefix(link.Rel, "http://nodeinfo.diaspora.software/ns/schema/2") {
			href = link.Href
		}
	}
	if href == "" {
		return nil, blueprint.NewNotFoundError("nodeinfo document", instance)
	}

	var nodeinfo struct {
		Software struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"software"`
	}
	if err := probeGet(ctx, httpClient, userAgent, href, &nodeinfo); err != nil {
		return nil, err
	}

	return &ProbeResult{
		Software: schemas.Software(strings.ToLower(nodeinfo.Software.Name)),
		Version:  nodeinfo.Software.Version,
	}, nil
}

func probeGet(ctx context.Context, httpClient *http.Client, userAgent, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building probe request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return &blueprint.NetworkError{Op: "GET " + url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, probeBodyLimit))
	if err != nil {
		return &blueprint.NetworkError{Op: "GET " + url, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("probe %s: decoding response: %w", url, err)
	}
	return nil
}
