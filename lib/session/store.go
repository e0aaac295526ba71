// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline/portal/lib/banking"
)

// Session is the persisted authentication state: an opaque bearer
// token and the user snapshot it belongs to. The two fields live in
// one file and are only ever written or removed together — a file with
// one but not the other is a defect, and Load rejects it.
type Session struct {
	// Token is the bearer token proving the user's identity.
	Token string `json:"auth_token"`

	// User is the current-user snapshot cached at login time and
	// refreshed on profile updates.
	User banking.User `json:"user"`
}

// Store reads and writes the session file. The file is created with
// mode 0600 (owner-only) since it contains an access token; the parent
// directory is created with 0700.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. Returns (nil, nil) when no session
// exists. A file that exists but cannot be parsed, or that is missing
// the token or the user, is an error — callers treat it as "no
// session" but should surface the problem.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", s.path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s has no auth_token", s.path)
	}
	if session.User.ID == 0 {
		return nil, fmt.Errorf("session file %s has no user", s.path)
	}

	return &session, nil
}

// Save writes the token and user snapshot together.
func (s *Store) Save(token string, user banking.User) error {
	data, err := json.MarshalIndent(Session{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the session file. Clearing an already-absent session
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}
