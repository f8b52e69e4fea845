package api

import (
	"context"
	"io"
	"net/url"
)

// ContextStatus fetches the context subsystem debug view.
func (c *Client) ContextStatus(ctx context.Context) (ContextStatus, error) {
	var status ContextStatus
	resp, err := c.get(ctx, "context status", "/context-debug")
	if err != nil {
		return ContextStatus{}, err
	}
	if err := decodeJSON("context status", resp, &status); err != nil {
		return ContextStatus{}, err
	}
	return status, nil
}

// RefreshContext asks the service to regenerate its context documents.
func (c *Client) RefreshContext(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult
	resp, err := c.post(ctx, "context refresh", "/context-refresh", nil)
	if err != nil {
		return RefreshResult{}, err
	}
	if err := decodeJSON("context refresh", resp, &result); err != nil {
		return RefreshResult{}, err
	}
	return result, nil
}

// ContextFile fetches one context document as raw text.
func (c *Client) ContextFile(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", &ValidationError{Op: "context show", Msg: "file name is required"}
	}

	resp, err := c.get(ctx, "context show", "/context/"+url.PathEscape(name))
	if err != nil {
		return "", err
	}
	if err := checkStatus("context show", resp); err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DecodeError{Op: "context show", Err: err}
	}
	return string(body), nil
}

// ContextStats fetches aggregate context usage counters.
func (c *Client) ContextStats(ctx context.Context) (ContextStats, error) {
	var stats ContextStats
	resp, err := c.get(ctx, "context stats", "/context-stats")
	if err != nil {
		return ContextStats{}, err
	}
	if err := decodeJSON("context stats", resp, &stats); err != nil {
		return ContextStats{}, err
	}
	return stats, nil
}

// ListContextFiles returns the tracked context documents.
func (c *Client) ListContextFiles(ctx context.Context) ([]ContextFile, error) {
	status, err := c.ContextStatus(ctx)
	if err != nil {
		return nil, err
	}
	return status.Files, nil
}
