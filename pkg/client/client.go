// Package client is the HTTP client SDK for the travel booking API. Every
// outbound call goes through a single request path that tracks per-operation
// loading flags and normalizes error messages, so callers have one place to
// read "is this running" and "what went wrong".
package client

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

type Client struct {
	baseURL    string
	httpClient *http.Client
	tracker    *OpTracker
	store      *SessionStore
	notifier   Notifier
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

func WithSessionStorage(storage Storage) Option {
	return func(c *Client) {
		c.store = NewSessionStore(storage)
	}
}

// New builds a client against the given base URL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		tracker:    NewOpTracker(),
		store:      NewSessionStore(NewMemoryStorage()),
		notifier:   NopNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ops exposes the loading and error state shared by every operation.
func (c *Client) Ops() *OpTracker {
	return c.tracker
}

// Session exposes the current user session.
func (c *Client) Session() *SessionStore {
	return c.store
}

type apiError struct {
	Message string `json:"message"`
}

// request performs one HTTP round trip. The opKey loading flag is set for
// exactly the duration of the call and is reset on every exit path; the
// tracker's last error is cleared on dispatch and set again only on failure.
func (c *Client) request(ctx context.Context, method, path string, body any, opKey string, out any) error {
	c.tracker.begin(opKey)
	defer c.tracker.end(opKey)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return c.failWith(opKey, fmt.Sprintf("encode request: %s", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return c.failWith(opKey, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failWith(opKey, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failWith(opKey, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return c.failWith(opKey, apiErr.Message)
		}
		return c.failWith(opKey, fmt.Sprintf("Error %d: %s", resp.StatusCode, resp.Status))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return c.failWith(opKey, fmt.Sprintf("decode response: %s", err))
		}
	}
	return nil
}

func (c *Client) failWith(opKey, message string) error {
	c.tracker.fail(message)
	c.notifier.Error(message)
	return &RequestError{OpKey: opKey, Message: message}
}

// RequestError is the failure of a single API call, carrying the normalized
// human-readable message shown to the user.
type RequestError struct {
	OpKey   string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}
