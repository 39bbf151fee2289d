package distribution

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetOverview returns server-side KPI counts. Callers treat a failure here
// as a soft degradation, not a load failure.
func (c *Client) GetOverview(ctx context.Context) (Overview, error) {
	var overview Overview
	if err := c.do(ctx, http.MethodGet, "/api/admin/overview", nil, nil, &overview); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

// ListDevUpgradePayments returns recent dev-upgrade purchases, newest
// first. limit <= 0 leaves the window to the server.
func (c *Client) ListDevUpgradePayments(ctx context.Context, limit int) ([]Payment, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var payload struct {
		Items []Payment `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/dev-upgrade-payments", query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}
