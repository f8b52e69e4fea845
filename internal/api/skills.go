package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// ListSkills returns the skill catalog.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	var result struct {
		Skills []Skill `json:"skills"`
	}
	resp, err := c.get(ctx, "skills list", "/skills")
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("skills list", resp, &result); err != nil {
		return nil, err
	}
	return result.Skills, nil
}

// InvokeSkill executes the skill identified by key with the given JSON
// params. params must be a valid JSON document ("{}" for none); anything else
// fails validation before the request is sent. The raw result object is
// returned as-is since each skill has its own shape.
func (c *Client) InvokeSkill(ctx context.Context, key, params, userEmail, sessionID string) (map[string]any, error) {
	if key == "" {
		return nil, &ValidationError{Op: "skill invoke", Msg: "skill key is required"}
	}
	if params == "" {
		params = "{}"
	}
	if !json.Valid([]byte(params)) {
		return nil, &ValidationError{Op: "skill invoke", Msg: "params is not valid JSON"}
	}

	body := map[string]any{
		"skill_key":  key,
		"params":     json.RawMessage(params),
		"user_email": userEmail,
		"session_id": sessionID,
	}

	var result map[string]any
	resp, err := c.post(ctx, "skill invoke", "/skill", body)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("skill invoke", resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SkillLog returns recent skill invocations, filtered to one skill when
// skill is non-empty.
func (c *Client) SkillLog(ctx context.Context, skill string, limit int) ([]SkillLogEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if skill != "" {
		q.Set("skill", skill)
	}

	var entries []SkillLogEntry
	resp, err := c.get(ctx, "skill log", "/skill-log?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("skill log", resp, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
