package distribution

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListSubmissions returns the moderation queue. A non-empty status narrows
// the server-side result.
func (c *Client) ListSubmissions(ctx context.Context, status string) ([]Submission, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}
	var payload struct {
		Items []Submission `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/submissions", query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ApproveSubmission releases a pending submission.
func (c *Client) ApproveSubmission(ctx context.Context, submissionID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/submissions/%d/approve", submissionID), nil, nil, nil)
}

// RejectSubmission declines a pending submission with a moderation note.
func (c *Client) RejectSubmission(ctx context.Context, submissionID int64, note string) error {
	body := map[string]string{"note": note}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/submissions/%d/reject", submissionID), nil, body, nil)
}
