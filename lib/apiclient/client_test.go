// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient creates a Client whose four endpoints all point at the
// given test server. token may be empty for unauthenticated clients.
func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		Endpoints: Endpoints{
			Auth:          server.URL,
			Accounts:      server.URL,
			Transactions:  server.URL,
			Notifications: server.URL,
		},
		Tokens: TokenFunc(func() string { return token }),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func writeEnvelope(writer http.ResponseWriter, data any) {
	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(map[string]any{
		"success": true,
		"message": "ok",
		"data":    data,
	})
}

func TestNewClientRequiresEndpoints(t *testing.T) {
	_, err := NewClient(ClientConfig{Endpoints: Endpoints{
		Auth:         "http://auth:8082",
		Accounts:     "http://accounts:8080",
		Transactions: "http://transactions:8081",
		// Notifications missing.
	}})
	if err == nil {
		t.Fatal("expected error for missing notifications endpoint")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
		}
		writeEnvelope(writer, nil)
	}), "tok-123")

	if _, err := client.Do(context.Background(), http.MethodGet, "/api/accounts/", nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, present := request.Header["Authorization"]; present {
			t.Error("Authorization header set on unauthenticated request")
		}
		writeEnvelope(writer, nil)
	}), "")

	if _, err := client.Do(context.Background(), http.MethodGet, "/api/accounts/", nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestUnauthorizedFiresHandlerOnce(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]any{
			"success": false,
			"message": "token expired",
		})
	}), "stale")

	fired := 0
	client.SetUnauthorizedHandler(func() { fired++ })

	_, err := client.Do(context.Background(), http.MethodGet, "/api/accounts/", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}

	// The original error still reaches the caller.
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Errorf("unexpected error detail: %v", err)
	}
}

func TestNonUnauthorizedDoesNotFireHandler(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
		json.NewEncoder(writer).Encode(map[string]any{"message": "account frozen"})
	}), "tok")

	fired := 0
	client.SetUnauthorizedHandler(func() { fired++ })

	_, err := client.Do(context.Background(), http.MethodDelete, "/api/accounts/1", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if fired != 0 {
		t.Errorf("handler fired %d times on non-401, want 0", fired)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "account frozen" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestTransportFailureDoesNotFireHandler(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // Connection refused from here on.

	client, err := NewClient(ClientConfig{Endpoints: Endpoints{
		Auth:          server.URL,
		Accounts:      server.URL,
		Transactions:  server.URL,
		Notifications: server.URL,
	}})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	fired := 0
	client.SetUnauthorizedHandler(func() { fired++ })

	_, err = client.Do(context.Background(), http.MethodGet, "/api/transactions/", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if IsUnauthorized(err) {
		t.Error("transport failure classified as unauthorized")
	}
	if fired != 0 {
		t.Errorf("handler fired %d times on transport failure, want 0", fired)
	}
}

func TestRequestTimeout(t *testing.T) {
	blocked := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-blocked
	}))
	t.Cleanup(server.Close)
	// Registered after server.Close so it runs first (cleanups are
	// LIFO): the handler must unblock before Close can finish waiting
	// for outstanding requests.
	t.Cleanup(func() { close(blocked) })

	client, err := NewClient(ClientConfig{
		Endpoints: Endpoints{
			Auth:          server.URL,
			Accounts:      server.URL,
			Transactions:  server.URL,
			Notifications: server.URL,
		},
		// A short-timeout client stands in for the production 10s
		// bound so the test stays fast.
		HTTPClient: &http.Client{Timeout: 50 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Do(context.Background(), http.MethodGet, "/api/accounts/", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	type account struct {
		ID      uint    `json:"id"`
		Balance float64 `json:"balance"`
	}

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(writer, []account{{ID: 1, Balance: 99.50}, {ID: 2, Balance: 0}})
	}), "tok")

	accounts, err := Get[[]account](context.Background(), client, "/api/accounts/")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Balance != 99.50 {
		t.Errorf("unexpected accounts: %+v", accounts)
	}
}

func TestPostSendsExactBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			t.Errorf("method = %s", request.Method)
		}
		if got := request.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["account_type"] != "savings" || body["currency"] != "USD" {
			t.Errorf("unexpected body: %v", body)
		}
		writeEnvelope(writer, map[string]any{"id": 7})
	}), "tok")

	created, err := Post[struct {
		ID uint `json:"id"`
	}](context.Background(), client, "/api/accounts/", map[string]string{
		"account_type": "savings",
		"currency":     "USD",
	})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created id = %d", created.ID)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream unavailable"))
	}), "")

	_, err := client.Do(context.Background(), http.MethodGet, "/api/notifications/", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream unavailable" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestErrorMessage(t *testing.T) {
	apiErr := &Error{StatusCode: 422, Message: "amount must be positive"}
	if got := ErrorMessage(apiErr, "generic"); got != "amount must be positive" {
		t.Errorf("ErrorMessage = %q", got)
	}
	if got := ErrorMessage(errors.New("dial tcp: refused"), "generic"); got != "generic" {
		t.Errorf("ErrorMessage fallback = %q", got)
	}
}
