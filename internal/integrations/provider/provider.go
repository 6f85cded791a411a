// Package provider holds the HTTP plumbing shared by the LLM adapters.
package provider

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

// DefaultTimeout bounds every outbound provider call.
const DefaultTimeout = 60 * time.Second

const (
	maxErrorBody    = 4096
	maxResponseBody = 1 << 20
)

// Error reports a failed provider call. StatusCode is zero when the request
// never produced a response (DNS, connect, timeout).
type Error struct {
	Provider   string
	StatusCode int
	URL        string
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: request to %s failed: %v", e.Provider, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d from %s: %s", e.Provider, e.StatusCode, e.URL, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatusCode() int {
	return e.StatusCode
}

// NewHTTPClient returns a client with DefaultTimeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// PostJSON marshals payload, POSTs it to url with an optional bearer token
// and returns the raw 2xx response body. Transport failures and non-2xx
// responses come back as *Error.
func PostJSON(ctx context.Context, client *http.Client, name, url, bearer string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(bearer) != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	if client == nil {
		client = NewHTTPClient()
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, &Error{Provider: name, URL: url, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &Error{Provider: name, StatusCode: res.StatusCode, URL: url, Body: string(buf)}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return nil, &Error{Provider: name, URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}
	return buf, nil
}

// JoinURL appends path to base with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/") + "/" + strings.TrimLeft(path, "/")
}
