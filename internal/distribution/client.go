package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client talks to the distribution API. The zero value is not usable; use
// New. A Client without a token source only reaches unauthenticated
// endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenSource
}

// New creates a client for the API at baseURL. When httpClient is nil,
// http.DefaultClient is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithTokens returns a copy of the client bound to the given token source.
// The underlying transport is shared.
func (c *Client) WithTokens(tokens *TokenSource) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

// Tokens returns the bound token source, nil for unauthenticated clients.
func (c *Client) Tokens() *TokenSource {
	return c.tokens
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues an authenticated JSON request and decodes the response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.request(ctx, method, path, query, body, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doPublic is do without bearer credentials.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.request(ctx, method, path, query, body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// stream issues an authenticated request and hands the open response body to
// the caller, who must close it. Used for file and zip downloads.
func (c *Client) stream(ctx context.Context, path string, query url.Values) (io.ReadCloser, http.Header, error) {
	resp, err := c.request(ctx, http.MethodGet, path, query, nil, true)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

// request performs the authenticated-fetch contract: attach the bearer token
// when one is held, and on a 401 with a refresh token available perform
// exactly one refresh followed by one retry of the original request. A
// second 401, or a failing refresh, surfaces ErrUnauthenticated. There is no
// retry loop.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any, withAuth bool) (*http.Response, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		payload = encoded
	}

	resp, err := c.send(ctx, method, path, query, payload, withAuth)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && withAuth && c.tokens != nil && c.tokens.RefreshToken() != "" {
		resp.Body.Close()
		if err := c.tokens.Refresh(ctx, c.refreshTokens); err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthenticated)
		}
		resp, err = c.send(ctx, method, path, query, payload, withAuth)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthenticated)
	case resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail := decodeErrorDetail(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, path, &APIError{StatusCode: resp.StatusCode, Message: detail})
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, withAuth bool) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// refreshTokens exchanges the refresh token via the unauthenticated refresh
// endpoint.
func (c *Client) refreshTokens(ctx context.Context, refreshToken string) (TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.doPublic(ctx, http.MethodPost, "/api/auth/refresh", nil, body, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func decodeErrorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}
