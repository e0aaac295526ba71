// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/testutil"
)

// newTestManager wires a Manager, its Store, and a gateway pointing at
// the given auth handler — the same shape the composition root builds.
func newTestManager(t *testing.T, handler http.Handler) (*Manager, *Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	var manager *Manager
	client, err := apiclient.NewClient(apiclient.ClientConfig{
		Endpoints: apiclient.Endpoints{
			Auth:          server.URL,
			Accounts:      server.URL,
			Transactions:  server.URL,
			Notifications: server.URL,
		},
		Tokens: apiclient.TokenFunc(func() string { return manager.Token() }),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	manager = NewManager(store, banking.NewAuthService(client), nil)
	client.SetUnauthorizedHandler(manager.Invalidate)
	return manager, store
}

func authHandler(t *testing.T, token string, user banking.User) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data":    banking.AuthPayload{Token: token, User: user},
		})
	})
}

func TestInitWithoutSession(t *testing.T) {
	manager, _ := newTestManager(t, http.NotFoundHandler())

	if !manager.Loading() {
		t.Error("manager not loading before Init")
	}
	manager.Init()
	if manager.Loading() {
		t.Error("manager still loading after Init")
	}
	if manager.Authenticated() {
		t.Error("authenticated with no persisted session")
	}
}

func TestInitRestoresPersistedSession(t *testing.T) {
	manager, store := newTestManager(t, http.NotFoundHandler())
	if err := store.Save("persisted-token", testUser()); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	manager.Init()

	if !manager.Authenticated() {
		t.Fatal("persisted session not restored")
	}
	if manager.Token() != "persisted-token" {
		t.Errorf("token = %q", manager.Token())
	}
	if user := manager.User(); user == nil || user.Email != "jane@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestInitDiscardsCorruptSession(t *testing.T) {
	manager, store := newTestManager(t, http.NotFoundHandler())
	if err := os.WriteFile(store.Path(), []byte(`{"auth_token":"orphan"}`), 0600); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	manager.Init()

	if manager.Authenticated() {
		t.Error("authenticated from a partial session file")
	}
	// The corrupt file is gone: the next run starts clean.
	if session, err := store.Load(); err != nil || session != nil {
		t.Errorf("corrupt file not removed: session=%v err=%v", session, err)
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	manager, store := newTestManager(t, authHandler(t, "fresh-token", testUser()))
	manager.Init()

	err := manager.Login(context.Background(), banking.LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if manager.Token() != "fresh-token" {
		t.Errorf("token = %q", manager.Token())
	}
	if user := manager.User(); user == nil || *user != testUser() {
		t.Errorf("user = %+v", user)
	}

	// The store persisted the same pair a reload would re-read.
	session, err := store.Load()
	if err != nil || session == nil {
		t.Fatalf("store.Load after login: session=%v err=%v", session, err)
	}
	if session.Token != "fresh-token" || session.User != testUser() {
		t.Errorf("persisted session = %+v", session)
	}
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	manager, store := newTestManager(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]any{"success": false, "message": "invalid credentials"})
	}))
	manager.Init()

	err := manager.Login(context.Background(), banking.LoginRequest{Email: "x", Password: "y"})
	if err == nil {
		t.Fatal("expected login error")
	}
	if got := apiclient.ErrorMessage(err, "generic"); got != "invalid credentials" {
		t.Errorf("error message = %q", got)
	}
	if manager.Authenticated() {
		t.Error("authenticated after failed login")
	}
	if session, _ := store.Load(); session != nil {
		t.Errorf("store written on failed login: %+v", session)
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	manager, _ := newTestManager(t, authHandler(t, "reg-token", testUser()))
	manager.Init()

	err := manager.Register(context.Background(), banking.RegisterRequest{
		Email: "jane@example.com", Password: "pw-longenough",
		FirstName: "Jane", LastName: "Doe",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if manager.Token() != "reg-token" {
		t.Errorf("token = %q", manager.Token())
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	manager, store := newTestManager(t, authHandler(t, "tok", testUser()))
	manager.Init()
	if err := manager.Login(context.Background(), banking.LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	manager.Logout()

	if manager.Authenticated() || manager.Token() != "" || manager.User() != nil {
		t.Error("state not cleared on logout")
	}
	if session, err := store.Load(); err != nil || session != nil {
		t.Errorf("store not cleared: session=%v err=%v", session, err)
	}
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	// A backend 401 on any call tears the session down through the
	// gateway's unauthorized handler, then the error still reaches
	// the call site.
	mux := http.NewServeMux()
	mux.Handle("/api/auth/login", authHandler(t, "tok", testUser()))
	mux.HandleFunc("/api/accounts/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]any{"success": false, "message": "token expired"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	var manager *Manager
	client, err := apiclient.NewClient(apiclient.ClientConfig{
		Endpoints: apiclient.Endpoints{
			Auth:          server.URL,
			Accounts:      server.URL,
			Transactions:  server.URL,
			Notifications: server.URL,
		},
		Tokens: apiclient.TokenFunc(func() string { return manager.Token() }),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	manager = NewManager(store, banking.NewAuthService(client), nil)
	client.SetUnauthorizedHandler(manager.Invalidate)

	manager.Init()
	if err := manager.Login(context.Background(), banking.LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	events := manager.Watch()

	_, err = banking.NewAccountsService(client).List(context.Background())
	if !apiclient.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	if manager.Authenticated() {
		t.Error("session survives a 401")
	}
	if session, _ := store.Load(); session != nil {
		t.Error("store survives a 401")
	}

	event := testutil.RequireReceive(t, events, time.Second, "waiting for invalidation event")
	if event.Authenticated {
		t.Error("watcher saw an authenticated event after invalidation")
	}
}

func TestUpdateProfileReplacesUserWholesale(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/auth/login", authHandler(t, "tok", testUser()))
	mux.HandleFunc("/api/auth/profile", func(writer http.ResponseWriter, request *http.Request) {
		// The server's record, including fields absent from the
		// partial update.
		json.NewEncoder(writer).Encode(map[string]any{
			"success": true,
			"data": banking.User{
				ID: 4, Email: "jane@example.com",
				FirstName: "Janet", LastName: "Doe",
				Phone: "+15550199", IsActive: true,
			},
		})
	})

	manager, store := newTestManager(t, mux)
	manager.Init()
	if err := manager.Login(context.Background(), banking.LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	updated, err := manager.UpdateProfile(context.Background(), banking.UpdateProfileRequest{FirstName: "Janet"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Phone != "+15550199" {
		t.Errorf("server record fields dropped: %+v", updated)
	}

	if user := manager.User(); user == nil || user.FirstName != "Janet" || user.Phone != "+15550199" {
		t.Errorf("in-memory user = %+v", user)
	}
	session, err := store.Load()
	if err != nil || session == nil {
		t.Fatalf("store.Load: session=%v err=%v", session, err)
	}
	if session.User.FirstName != "Janet" || session.Token != "tok" {
		t.Errorf("persisted session = %+v", session)
	}
}

func TestWatchObservesLoginAndLogout(t *testing.T) {
	manager, _ := newTestManager(t, authHandler(t, "tok", testUser()))
	manager.Init()
	events := manager.Watch()

	if err := manager.Login(context.Background(), banking.LoginRequest{}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	event := testutil.RequireReceive(t, events, time.Second, "waiting for login event")
	if !event.Authenticated || event.User == nil {
		t.Errorf("login event = %+v", event)
	}

	manager.Logout()
	event = testutil.RequireReceive(t, events, time.Second, "waiting for logout event")
	if event.Authenticated || event.User != nil {
		t.Errorf("logout event = %+v", event)
	}

	// Logout when already unauthenticated notifies nobody.
	manager.Logout()
	testutil.RequireNoReceive(t, events, 50*time.Millisecond, "logout without a session must not notify")
}
