package distribution

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers returns all platform accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var payload struct {
		Items []User `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// DeleteUser removes an account permanently.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), nil, nil, nil)
}

// SetUserRole changes an account's role.
func (c *Client) SetUserRole(ctx context.Context, userID int64, role string) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	body := map[string]string{"role": role}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/role", userID), nil, body, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// ResetUserPassword issues a one-time temporary password for an account.
// The plaintext is shown once and never persisted.
func (c *Client) ResetUserPassword(ctx context.Context, userID int64) (string, error) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reset-password", userID), nil, nil, &payload); err != nil {
		return "", err
	}
	return payload.Password, nil
}
