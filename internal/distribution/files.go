package distribution

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SubmissionManifest returns the build manifest for one submission.
func (c *Client) SubmissionManifest(ctx context.Context, submissionID int64) (Manifest, error) {
	var manifest Manifest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/submissions/%d/manifest", submissionID), nil, nil, &manifest); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// SubmissionFiles lists the files uploaded for one submission.
func (c *Client) SubmissionFiles(ctx context.Context, submissionID int64) ([]ManifestFile, error) {
	var payload struct {
		Files []ManifestFile `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/submissions/%d/files", submissionID), nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Files, nil
}

// DownloadSubmissionZip streams the zipped build artifact. The caller must
// close the reader.
func (c *Client) DownloadSubmissionZip(ctx context.Context, submissionID int64) (io.ReadCloser, http.Header, error) {
	return c.stream(ctx, fmt.Sprintf("/api/admin/submissions/%d/files/zip", submissionID), nil)
}

// DownloadSubmissionFile streams a single file from the build. The caller
// must close the reader.
func (c *Client) DownloadSubmissionFile(ctx context.Context, submissionID int64, path string) (io.ReadCloser, http.Header, error) {
	query := url.Values{"path": {path}}
	return c.stream(ctx, fmt.Sprintf("/api/admin/submissions/%d/files/download", submissionID), query)
}

// VerifySubmissionFile asks the backend to re-check one file's chunk and
// whole-file hashes.
func (c *Client) VerifySubmissionFile(ctx context.Context, submissionID int64, path string) (VerifyResult, error) {
	query := url.Values{"path": {path}}
	var result VerifyResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/submissions/%d/files/verify", submissionID), query, nil, &result); err != nil {
		return VerifyResult{}, err
	}
	if result.Path == "" {
		result.Path = path
	}
	return result, nil
}

// VerifySubmissionFiles asks the backend to verify a set of files in one
// call. Per-file problems are reported inside the results, not as an error.
func (c *Client) VerifySubmissionFiles(ctx context.Context, submissionID int64, paths []string) ([]VerifyResult, error) {
	body := map[string][]string{"paths": paths}
	var payload struct {
		Results []VerifyResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/submissions/%d/files/verify-batch", submissionID), nil, body, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
