package api

import (
	"context"
	"net/url"
)

// LatestSession returns the id of user's most recent conversation session.
// Any non-2xx answer means "no session to continue" and returns ("", nil);
// the caller starts fresh either way, so only transport failures surface.
func (c *Client) LatestSession(ctx context.Context, user string) (string, error) {
	q := url.Values{}
	q.Set("user", user)

	resp, err := c.get(ctx, "latest session", "/sessions/latest?"+q.Encode())
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp)
		return "", nil
	}

	var result struct {
		SessionID string `json:"session_id"`
	}
	if err := decodeJSON("latest session", resp, &result); err != nil {
		return "", err
	}
	return result.SessionID, nil
}

// TodaySessions returns the ids of user's sessions from today, oldest first.
func (c *Client) TodaySessions(ctx context.Context, user string) ([]string, error) {
	q := url.Values{}
	q.Set("user", user)

	var result struct {
		Sessions []string `json:"sessions"`
	}
	resp, err := c.get(ctx, "today sessions", "/sessions/today?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("today sessions", resp, &result); err != nil {
		return nil, err
	}
	return result.Sessions, nil
}

// GenerateReflection asks the service to synthesize a reflection over the
// given session ids, preserved in order.
func (c *Client) GenerateReflection(ctx context.Context, user string, sessions []string) (Reflection, error) {
	if len(sessions) == 0 {
		return Reflection{}, &ValidationError{Op: "reflect", Msg: "no sessions to reflect over"}
	}

	body := map[string]any{"user_email": user, "sessions": sessions}

	var result Reflection
	resp, err := c.post(ctx, "reflect", "/reflect", body)
	if err != nil {
		return Reflection{}, err
	}
	if err := decodeJSON("reflect", resp, &result); err != nil {
		return Reflection{}, err
	}
	return result, nil
}

// SaveReflection persists a reflection on the service side and returns its
// id, or UnknownID when the service omits one.
func (c *Client) SaveReflection(ctx context.Context, user string, r Reflection) (string, error) {
	body := map[string]any{"user_email": user, "reflection": r}

	var result struct {
		ID string `json:"id"`
	}
	resp, err := c.post(ctx, "reflection save", "/reflection/save", body)
	if err != nil {
		return "", err
	}
	if err := decodeJSON("reflection save", resp, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return UnknownID, nil
	}
	return result.ID, nil
}
