package distribution

import (
	"context"
	"net/http"
)

// PublicApps returns the released catalog. The endpoint is public; no
// bearer token is attached even when one is held.
func (c *Client) PublicApps(ctx context.Context) ([]App, error) {
	var apps []App
	if err := c.doPublic(ctx, http.MethodGet, "/api/public/apps", nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
