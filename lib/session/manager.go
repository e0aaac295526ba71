// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ledgerline/portal/lib/banking"
)

// Event describes a change in authentication state, delivered to
// watchers.
type Event struct {
	// Authenticated is true when a session is present after the
	// change.
	Authenticated bool
	// User is the current-user snapshot, nil when unauthenticated.
	User *banking.User
}

// Manager owns the in-memory authentication state and mediates every
// session transition. It is passed explicitly to consumers — there is
// no package-level ambient session.
//
// State machine: a fresh Manager is loading until Init completes, then
// authenticated or unauthenticated. Login, Register, Logout,
// UpdateProfile and Invalidate drive the remaining transitions. Failed
// operations leave the state untouched and return the error for the
// caller to display.
//
// All methods are safe for concurrent use.
type Manager struct {
	store  *Store
	auth   *banking.AuthService
	logger *slog.Logger

	mu       sync.Mutex
	loaded   bool
	token    string
	user     *banking.User
	watchers []chan Event
}

// NewManager creates a Manager over the given store and auth service.
func NewManager(store *Store, auth *banking.AuthService, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, auth: auth, logger: logger}
}

// Init loads the persisted session, if any. It must complete before
// consumers decide whether to redirect to login: until then Loading()
// reports true and the UI shows its loading state. A corrupt session
// file is logged and treated as no session.
func (m *Manager) Init() {
	session, err := m.store.Load()
	if err != nil {
		m.logger.Warn("discarding unreadable session", "error", err)
		m.store.Clear()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session != nil {
		m.token = session.Token
		user := session.User
		m.user = &user
	}
	m.loaded = true
}

// Loading reports whether Init has yet to complete.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loaded
}

// Token returns the current bearer token, empty when unauthenticated.
// Implements apiclient.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns a copy of the current-user snapshot, nil when
// unauthenticated.
func (m *Manager) User() *banking.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// Authenticated reports whether a session is present.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

// Watch returns a channel receiving authentication state changes. The
// channel is buffered; a watcher that falls behind loses intermediate
// events but always observes the latest state eventually.
func (m *Manager) Watch() <-chan Event {
	channel := make(chan Event, 8)
	m.mu.Lock()
	m.watchers = append(m.watchers, channel)
	m.mu.Unlock()
	return channel
}

// Login authenticates and, on success, persists and adopts the
// returned token and user as one unit. On failure the state is
// unchanged and the error is returned for display.
func (m *Manager) Login(ctx context.Context, request banking.LoginRequest) error {
	response, err := m.auth.Login(ctx, request)
	if err != nil {
		return err
	}
	return m.adopt(response.Data)
}

// Register creates an account; its session contract is identical to
// Login.
func (m *Manager) Register(ctx context.Context, request banking.RegisterRequest) error {
	response, err := m.auth.Register(ctx, request)
	if err != nil {
		return err
	}
	return m.adopt(response.Data)
}

// adopt persists then installs a fresh token/user pair.
func (m *Manager) adopt(payload banking.AuthPayload) error {
	if err := m.store.Save(payload.Token, payload.User); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = payload.Token
	user := payload.User
	m.user = &user
	m.mu.Unlock()

	m.logger.Info("session established", "user", payload.User.Email)
	m.notify()
	return nil
}

// Logout clears the in-memory state and the store. The transition is
// local-only: no network round-trip is required to become
// unauthenticated. (The CLI additionally tells the backend on a
// best-effort basis before calling this.)
func (m *Manager) Logout() {
	m.clear("logged out")
}

// Invalidate is the 401 path: the backend rejected the token, so the
// session is torn down exactly as on logout. Installed as the
// gateway's unauthorized handler by the composition root.
func (m *Manager) Invalidate() {
	m.clear("session rejected by backend")
}

func (m *Manager) clear(reason string) {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing session store", "error", err)
	}

	m.mu.Lock()
	wasAuthenticated := m.token != "" || m.user != nil
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if wasAuthenticated {
		m.logger.Info("session cleared", "reason", reason)
		m.notify()
	}
}

// UpdateProfile sends a partial update and replaces the stored user
// with the server's full returned record — no client-side merging. On
// failure the state is unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, request banking.UpdateProfileRequest) (banking.User, error) {
	updated, err := m.auth.UpdateProfile(ctx, request)
	if err != nil {
		return banking.User{}, err
	}

	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if err := m.store.Save(token, updated); err != nil {
		return banking.User{}, err
	}

	m.mu.Lock()
	user := updated
	m.user = &user
	m.mu.Unlock()

	m.notify()
	return updated, nil
}

// ChangePassword changes the password; the session itself is
// unaffected.
func (m *Manager) ChangePassword(ctx context.Context, request banking.ChangePasswordRequest) error {
	return m.auth.ChangePassword(ctx, request)
}

// notify delivers the current state to all watchers without blocking.
func (m *Manager) notify() {
	m.mu.Lock()
	event := Event{Authenticated: m.token != "" && m.user != nil}
	if m.user != nil {
		user := *m.user
		event.User = &user
	}
	watchers := make([]chan Event, len(m.watchers))
	copy(watchers, m.watchers)
	m.mu.Unlock()

	for _, watcher := range watchers {
		select {
		case watcher <- event:
		default:
			// Watcher buffer full: drop the intermediate event.
		}
	}
}
