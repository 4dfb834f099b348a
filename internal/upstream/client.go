package upstream

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

// TokenSource provides the bearer token bound to a request context and is
// told when upstream rejects that token. Implemented by the session layer.
type TokenSource interface {
	// Token returns the bearer token for this request, or "" when the
	// caller is anonymous.
	Token(ctx context.Context) string
	// Invalidate is called when upstream answers 401. Implementations must
	// clear the token and the in-memory user together.
	Invalidate(ctx context.Context)
}

// Notice is a user-facing notification emitted by the client as a side
// channel next to the returned error.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives user-facing notices. Implemented by the session layer
// as a per-session flash queue.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notice) {}

// Client is the single choke point for requests to the AgriLoan API.
//
// Side effects are strictly limited to token invalidation (via the
// TokenSource) and notice emission. No retries, no backoff, no queuing.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	notify  Notifier
}

// NewClient creates an upstream client. baseURL must not end with a slash.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, notify Notifier) *Client {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		notify:  notify,
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	// 1. Build request
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	// 2. Attach bearer token only when the context carries one
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// 3. Send
	resp, err := c.http.Do(req)
	if err != nil {
		c.notify.Notify(ctx, Notice{
			Level:   "error",
			Title:   "Network Error",
			Message: "Failed to connect to the server. Please check your connection.",
		})
		return &Error{Status: 0, Message: "failed to connect to the server", cause: err}
	}
	defer resp.Body.Close()

	// 4. 401: forced logout. Token and user are cleared together by the
	// TokenSource; the caller only sees the classified error.
	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate(ctx)
		c.notify.Notify(ctx, Notice{
			Level:   "error",
			Title:   "Session Expired",
			Message: "Please log in again.",
		})
		return &Error{Status: http.StatusUnauthorized, Message: "not authenticated"}
	}

	// 5. Other non-2xx: parse the error body, fall back to the status text
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody := c.parseErrorBody(resp)
		message, _ := errBody["message"].(string)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.notify.Notify(ctx, Notice{
			Level:   "error",
			Title:   fmt.Sprintf("API Error (%d)", resp.StatusCode),
			Message: message,
		})
		return &Error{Status: resp.StatusCode, Message: message, Body: errBody}
	}

	// 6. Success: JSON when the content type says so, raw text otherwise
	return c.parseResponse(resp, out)
}

func (c *Client) parseErrorBody(resp *http.Response) map[string]interface{} {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return map[string]interface{}{"message": resp.Status}
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return map[string]interface{}{"message": resp.Status}
	}
	return parsed
}

func (c *Client) parseResponse(resp *http.Response, out interface{}) error {
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	// Non-JSON responses are surfaced as raw text
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	return fmt.Errorf("unexpected content type %q", contentType)
}
