package api

import (
	"context"
	"net/url"
	"strconv"
)

// MemoryStatus fetches the memory subsystem summary.
func (c *Client) MemoryStatus(ctx context.Context) (MemoryStatus, error) {
	var status MemoryStatus
	resp, err := c.get(ctx, "memory status", "/memory/status")
	if err != nil {
		return MemoryStatus{}, err
	}
	if err := decodeJSON("memory status", resp, &status); err != nil {
		return MemoryStatus{}, err
	}
	return status, nil
}

// SearchMemories runs a semantic search. An empty result list is a valid
// outcome, not an error. user scopes the search when non-empty.
func (c *Client) SearchMemories(ctx context.Context, query string, limit int, user string) ([]MemorySearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	if user != "" {
		q.Set("user", user)
	}

	var results []MemorySearchResult
	resp, err := c.get(ctx, "memory search", "/memory/search?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("memory search", resp, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// IndexMemory stores content with optional tags and returns the new entry's
// id, or UnknownID when the service omits one.
func (c *Client) IndexMemory(ctx context.Context, content string, tags []string) (string, error) {
	body := map[string]any{"content": content, "tags": tags}

	var result struct {
		ID string `json:"id"`
	}
	resp, err := c.post(ctx, "memory index", "/memory/index", body)
	if err != nil {
		return "", err
	}
	if err := decodeJSON("memory index", resp, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return UnknownID, nil
	}
	return result.ID, nil
}

// ListMemories returns up to limit recent entries, scoped to user when
// non-empty.
func (c *Client) ListMemories(ctx context.Context, limit int, user string) ([]MemoryEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if user != "" {
		q.Set("user", user)
	}

	var entries []MemoryEntry
	resp, err := c.get(ctx, "memory list", "/memory/list?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("memory list", resp, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearMemories deletes all of user's memories and returns how many went.
func (c *Client) ClearMemories(ctx context.Context, user string) (int, error) {
	var result struct {
		Deleted int `json:"deleted"`
	}
	resp, err := c.post(ctx, "memory clear", "/memory/clear", map[string]any{"user": user})
	if err != nil {
		return 0, err
	}
	if err := decodeJSON("memory clear", resp, &result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}
