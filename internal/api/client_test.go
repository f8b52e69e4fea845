package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// newRecordingServer answers every request with status and body, and records
// what arrived so tests can assert the exact request line.
func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(data),
			Header: r.Header.Clone(),
		})
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestHealth(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"status":"ok"}`)

	if err := New(srv.URL).Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := (*reqs)[0]
	if got.Method != "GET" || got.Path != "/health" {
		t.Errorf("request = %s %s, want GET /health", got.Method, got.Path)
	}
}

func TestHealthRemoteError(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusServiceUnavailable, "db down")

	err := New(srv.URL).Health(context.Background())
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *RemoteError", err)
	}
	if rerr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", rerr.Status)
	}
	if rerr.Body != "db down" {
		t.Errorf("Body = %q, want body verbatim", rerr.Body)
	}
}

func TestTransportError(t *testing.T) {
	// A closed server gives connection refused.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Health(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *TransportError", err)
	}
}

func TestDecodeErrorDistinctFromRemote(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, "this is not json")

	_, err := New(srv.URL).MemoryStatus(context.Background())
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	var rerr *RemoteError
	if errors.As(err, &rerr) {
		t.Error("decode failure must not be classified as RemoteError")
	}
}

func TestSearchMemoriesQuery(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `[]`)

	results, err := New(srv.URL).SearchMemories(context.Background(), "roadmap review", 5, "mwood@mergeworld.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}

	got := (*reqs)[0]
	if got.Path != "/memory/search" {
		t.Errorf("path = %q", got.Path)
	}
	for _, want := range []string{"query=roadmap+review", "limit=5", "user=mwood%40mergeworld.com"} {
		if !strings.Contains(got.Query, want) {
			t.Errorf("query %q missing %q", got.Query, want)
		}
	}
}

func TestSearchMemoriesOmitsEmptyUser(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `[]`)

	if _, err := New(srv.URL).SearchMemories(context.Background(), "q", 10, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains((*reqs)[0].Query, "user=") {
		t.Errorf("query %q should not carry a user parameter", (*reqs)[0].Query)
	}
}

func TestIndexMemory(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"id":"mem-42"}`)

	id, err := New(srv.URL).IndexMemory(context.Background(), "note", []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "mem-42" {
		t.Errorf("id = %q, want mem-42", id)
	}

	got := (*reqs)[0]
	if got.Method != "POST" || got.Path != "/memory/index" {
		t.Errorf("request = %s %s", got.Method, got.Path)
	}
	if !strings.Contains(got.Body, `"content":"note"`) || !strings.Contains(got.Body, `"tags":["a","b"]`) {
		t.Errorf("body = %s", got.Body)
	}
}

func TestIndexMemoryMissingID(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{"status":"indexed"}`)

	id, err := New(srv.URL).IndexMemory(context.Background(), "note", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != UnknownID {
		t.Errorf("id = %q, want %q", id, UnknownID)
	}
}

func TestClearMemories(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"deleted":7}`)

	n, err := New(srv.URL).ClearMemories(context.Background(), "mwood@mergeworld.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("deleted = %d, want 7", n)
	}
	if !strings.Contains((*reqs)[0].Body, `"user":"mwood@mergeworld.com"`) {
		t.Errorf("body = %s", (*reqs)[0].Body)
	}
}

func TestListSkillsEnvelope(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{"skills":[{"key":"jira-query","name":"Jira Query","enabled":true}]}`)

	skills, err := New(srv.URL).ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skills) != 1 || skills[0].Key != "jira-query" {
		t.Errorf("skills = %+v", skills)
	}
}

func TestInvokeSkillValidation(t *testing.T) {
	// Server must never be reached when params fail validation.
	srv, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)

	_, err := c.InvokeSkill(context.Background(), "jira-query", "{not json", "u@x", "cli_x")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(*reqs) != 0 {
		t.Errorf("request was sent despite validation failure")
	}

	if _, err := c.InvokeSkill(context.Background(), "", "{}", "u@x", "cli_x"); !errors.As(err, &verr) {
		t.Errorf("empty key: error type = %T, want *ValidationError", err)
	}
}

func TestInvokeSkillBody(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"result":"ok"}`)

	out, err := New(srv.URL).InvokeSkill(context.Background(), "jira-query", `{"jql":"assignee=me"}`, "mwood@mergeworld.com", "cli_20260825_120000_deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["result"] != "ok" {
		t.Errorf("result = %v", out)
	}

	body := (*reqs)[0].Body
	for _, want := range []string{
		`"skill_key":"jira-query"`,
		`"params":{"jql":"assignee=me"}`,
		`"user_email":"mwood@mergeworld.com"`,
		`"session_id":"cli_20260825_120000_deadbeef"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestContextFileRawBody(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, "# Jira Summary\n\nplain text, not json")

	text, err := New(srv.URL).ContextFile(context.Background(), "jira_summary.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "# Jira Summary") {
		t.Errorf("text = %q", text)
	}
	if (*reqs)[0].Path != "/context/jira_summary.md" {
		t.Errorf("path = %q", (*reqs)[0].Path)
	}
}

func TestChatHeaders(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"response":"hello"}`)
	t.Setenv("PAM_CLI_API_KEY", "key-123")

	reply, err := New(srv.URL).Chat(context.Background(), "hi", "mwood@mergeworld.com", "cli_x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello" {
		t.Errorf("reply = %q", reply)
	}

	h := (*reqs)[0].Header
	if got := h.Get("X-User-Email"); got != "mwood@mergeworld.com" {
		t.Errorf("X-User-Email = %q", got)
	}
	if got := h.Get("X-PAM-CLI-Key"); got != "key-123" {
		t.Errorf("X-PAM-CLI-Key = %q", got)
	}
}

func TestChatKeyHeaderSentWhenUnset(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"response":"hello"}`)
	t.Setenv("PAM_CLI_API_KEY", "")

	if _, err := New(srv.URL).Chat(context.Background(), "hi", "u@x", "cli_x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header must be present with an empty value, not omitted.
	if _, ok := (*reqs)[0].Header["X-Pam-Cli-Key"]; !ok {
		// net/http canonicalizes on receive; check both spellings.
		if _, ok := (*reqs)[0].Header["X-PAM-CLI-Key"]; !ok {
			t.Error("X-PAM-CLI-Key header missing when env var is unset")
		}
	}
}

func TestChatErrorCarriesBody(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusUnauthorized, "invalid CLI key")

	_, err := New(srv.URL).Chat(context.Background(), "hi", "u@x", "cli_x")
	var rerr *RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *RemoteError", err)
	}
	if !strings.Contains(err.Error(), "invalid CLI key") {
		t.Errorf("error = %q, want the server body verbatim", err.Error())
	}
}

func TestLatestSessionNotFoundIsNoResult(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusNotFound, "no sessions")

	id, err := New(srv.URL).LatestSession(context.Background(), "u@x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty", id)
	}
}

func TestLatestSession(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"session_id":"cli_20260825_090000_cafebabe"}`)

	id, err := New(srv.URL).LatestSession(context.Background(), "mwood@mergeworld.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "cli_20260825_090000_cafebabe" {
		t.Errorf("id = %q", id)
	}
	if !strings.Contains((*reqs)[0].Query, "user=mwood%40mergeworld.com") {
		t.Errorf("query = %q", (*reqs)[0].Query)
	}
}

func TestGenerateReflectionPreservesOrder(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"what_worked":["x"],"what_failed":[],"learnings":[],"action_items":[]}`)

	sessions := []string{"s2", "s1", "s3"}
	r, err := New(srv.URL).GenerateReflection(context.Background(), "u@x", sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.WhatWorked) != 1 || r.WhatWorked[0] != "x" {
		t.Errorf("reflection = %+v", r)
	}
	if !strings.Contains((*reqs)[0].Body, `"sessions":["s2","s1","s3"]`) {
		t.Errorf("body = %s, want sessions in caller order", (*reqs)[0].Body)
	}
}

func TestGenerateReflectionNoSessions(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{}`)

	_, err := New(srv.URL).GenerateReflection(context.Background(), "u@x", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(*reqs) != 0 {
		t.Error("request was sent despite validation failure")
	}
}

func TestSaveReflectionMissingID(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{"saved":true}`)

	id, err := New(srv.URL).SaveReflection(context.Background(), "u@x", Reflection{Learnings: []string{"l"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != UnknownID {
		t.Errorf("id = %q, want %q", id, UnknownID)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"status":"ok"}`)

	if err := New(srv.URL + "/").Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*reqs)[0].Path != "/health" {
		t.Errorf("path = %q, want /health", (*reqs)[0].Path)
	}
}
