// Package httpapi is the JSON-over-HTTPS client shared by the backend
// adapters. It owns the headers every request carries (User-Agent, and
// Authorization: Bearer when a session token is present) and translates
// transport and HTTP-level failures into the blueprint error taxonomy, so
// adapters only deal with wire payloads.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"Alcove/internal/backends/blueprint"
)

// Client issues requests against one instance's API root.
type Client struct {
	httpClient *http.Client
	base       string
	userAgent  string
	token      string
}

// New creates a client for an instance. instance is the scheme+host URL;
// token may be empty for guest sessions. httpClient may be nil, in which
// case http.DefaultClient is used.
func New(instance, userAgent, token string, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(instance, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid instance URL %q", instance)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		base:       base,
		userAgent:  userAgent,
		token:      token,
	}, nil
}

// Authenticated reports whether the client carries a session token.
func (c *Client) Authenticated() bool { return c.token != "" }

// Get issues a GET with query parameters and decodes the JSON response
// into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return c.do(req, path, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into
// out (body and out may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the JSON response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPut, path, body, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, out)
}

// apiError is the error envelope Lemmy-family servers return on failure.
type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &blueprint.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return &blueprint.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		return wrapStatusError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response for %s: %w", op, err)
	}
	return nil
}

// wrapStatusError maps an HTTP failure onto the taxonomy. The server's
// error string is preserved: callers surface it verbatim in forms, and the
// adapters pattern-match it for semantic errors like missing_totp_token.
func wrapStatusError(op string, status int, raw []byte) error {
	var envelope apiError
	_ = json.Unmarshal(raw, &envelope)
	message := envelope.Error
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}

	switch {
	case status == http.StatusNotFound || strings.Contains(message, "couldnt_find") || strings.Contains(message, "not_found"):
		return blueprint.NewNotFoundError(op, message)
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusConflict:
		return &blueprint.ValidationError{Message: message}
	default:
		return &blueprint.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", status, message)}
	}
}
