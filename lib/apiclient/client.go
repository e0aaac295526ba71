// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ledgerline/portal/lib/netutil"
)

// RequestTimeout bounds every backend call. Exceeding it surfaces as a
// transport failure to the caller, never a silent hang.
const RequestTimeout = 10 * time.Second

// TokenSource yields the bearer token for outgoing requests. An empty
// string means no session: the request proceeds unauthenticated and
// the backend is responsible for rejecting it.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to the TokenSource interface.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Endpoints are the backend base URLs. All four are required.
	Endpoints Endpoints
	// Tokens yields the bearer token per request. If nil, all
	// requests are sent unauthenticated.
	Tokens TokenSource
	// HTTPClient is used for all requests. If nil, a client with
	// RequestTimeout is created. A supplied client keeps its own
	// timeout (tests use this to simulate hangs).
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is the portal's outbound request gateway. It is stateless
// apart from configuration and safe for concurrent use.
type Client struct {
	endpoints      Endpoints
	tokens         TokenSource
	httpClient     *http.Client
	logger         *slog.Logger
	onUnauthorized func()
}

// NewClient creates a Client. Every endpoint must be a valid absolute
// URL; trailing slashes are stripped since request URLs are built by
// direct concatenation with the request path.
func NewClient(config ClientConfig) (*Client, error) {
	endpoints := config.Endpoints
	for _, pair := range []struct {
		name  string
		value *string
	}{
		{"auth", &endpoints.Auth},
		{"accounts", &endpoints.Accounts},
		{"transactions", &endpoints.Transactions},
		{"notifications", &endpoints.Notifications},
	} {
		if *pair.value == "" {
			return nil, fmt.Errorf("apiclient: %s endpoint is required", pair.name)
		}
		if _, err := url.Parse(*pair.value); err != nil {
			return nil, fmt.Errorf("apiclient: invalid %s endpoint %q: %w", pair.name, *pair.value, err)
		}
		*pair.value = strings.TrimRight(*pair.value, "/")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoints:  endpoints,
		tokens:     config.Tokens,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// SetUnauthorizedHandler installs the hook invoked when a backend
// responds 401. The session manager installs its teardown here; the
// transport itself never touches session state. The hook fires exactly
// once per 401 response, before the error is returned to the caller.
func (c *Client) SetUnauthorizedHandler(handler func()) {
	c.onUnauthorized = handler
}

// Do performs an HTTP request against the backend owning path and
// returns the raw response body. On 2xx, returns the body. On 4xx/5xx,
// returns the body alongside a *Error. Transport failures (connection
// refused, timeout) propagate wrapped and unclassified.
func (c *Client) Do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	requestURL := c.endpoints.Resolve(path) + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("apiclient: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("apiclient: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// All backend error responses share the envelope shape. A
	// non-JSON body (proxy error page, plain text) still yields a
	// typed error carrying the status code.
	apiErr := &Error{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil {
		apiErr.Message = strings.TrimSpace(string(responseBody))
	}

	if response.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	c.logger.Warn("backend error response",
		"method", method, "path", path,
		"status", response.StatusCode, "message", apiErr.Message,
	)

	return responseBody, apiErr
}

// envelope is the common backend response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// decode unwraps the backend envelope into the typed data value. Every
// domain service operation except login/register funnels through this
// so unwrapping cannot drift between call sites.
func decode[T any](body []byte) (T, error) {
	var wrapped envelope[T]
	if err := json.Unmarshal(body, &wrapped); err != nil {
		var zero T
		return zero, fmt.Errorf("apiclient: failed to parse response envelope: %w", err)
	}
	return wrapped.Data, nil
}

// Get issues a GET and returns the unwrapped data value.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	body, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// Post issues a POST with a JSON body and returns the unwrapped data
// value.
func Post[T any](ctx context.Context, c *Client, path string, requestBody any) (T, error) {
	body, err := c.Do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// Put issues a PUT with a JSON body and returns the unwrapped data
// value.
func Put[T any](ctx context.Context, c *Client, path string, requestBody any) (T, error) {
	body, err := c.Do(ctx, http.MethodPut, path, requestBody)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// Delete issues a DELETE. The backends return an empty envelope on
// deletion, so there is no data value to unwrap.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil)
	return err
}
