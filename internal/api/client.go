package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UnknownID is reported when the service acknowledges a write but omits the
// identifier of the created record.
const UnknownID = "unknown"

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 64 << 10

const requestTimeout = 60 * time.Second

// Client is a typed client for the PAM service. One Client (and its embedded
// http.Client) is built by the composition root and shared across the whole
// invocation; it is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// HTTPClient exposes the shared http.Client for callers that need to make
// plain requests (URL fetching) without constructing a second pool.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// do executes one request. headers are merged in after the defaults via
// direct map assignment so header-name casing is preserved on the wire.
func (c *Client) do(ctx context.Context, op, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshalling request: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header[k] = []string{v}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, op, path string) (*http.Response, error) {
	return c.do(ctx, op, http.MethodGet, path, nil, nil)
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*http.Response, error) {
	return c.do(ctx, op, http.MethodPost, path, body, nil)
}

// checkStatus consumes resp on failure and returns a RemoteError for any
// non-2xx status. On success the body is left for the caller.
func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &RemoteError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// decodeJSON closes resp.Body, maps non-2xx to RemoteError and a 2xx body
// that does not parse into v to DecodeError.
func decodeJSON(op string, resp *http.Response, v any) error {
	if err := checkStatus(op, resp); err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// drain discards a response we only needed the status of.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
