package distribution

import (
	"context"
	"net/http"
	"strings"
)

// Login exchanges credentials for a token pair. The call is unauthenticated;
// the returned pair is not bound to the client, callers seed a TokenSource
// with it. Identities containing "@" are submitted as email, anything else
// as username.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	body := map[string]string{"password": creds.Password}
	if strings.Contains(creds.Identity, "@") {
		body["email"] = creds.Identity
	} else {
		body["username"] = creds.Identity
	}
	var pair TokenPair
	if err := c.doPublic(ctx, http.MethodPost, "/api/auth/login", nil, body, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Me returns the account behind the current access token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// Logout invalidates the current token pair server-side. Errors are
// reported but the caller usually discards the session regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}
