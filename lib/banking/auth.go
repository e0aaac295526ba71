// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ledgerline/portal/lib/apiclient"
)

// AuthService talks to the auth backend: login, registration, profile,
// password management.
type AuthService struct {
	client *apiclient.Client
}

// NewAuthService creates an AuthService over the shared gateway.
func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

// Login authenticates with email and password. Returns the full
// response — token and user together — rather than an unwrapped value;
// see AuthResponse.
func (s *AuthService) Login(ctx context.Context, request LoginRequest) (*AuthResponse, error) {
	return s.authCall(ctx, "/api/auth/login", request)
}

// Register creates a new user and, like Login, returns the full
// response with the fresh token and user snapshot.
func (s *AuthService) Register(ctx context.Context, request RegisterRequest) (*AuthResponse, error) {
	return s.authCall(ctx, "/api/auth/register", request)
}

func (s *AuthService) authCall(ctx context.Context, path string, request any) (*AuthResponse, error) {
	body, err := s.client.Do(ctx, http.MethodPost, path, request)
	if err != nil {
		return nil, err
	}

	var response AuthResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("banking: failed to parse auth response: %w", err)
	}
	if response.Data.Token == "" {
		return nil, fmt.Errorf("banking: auth response missing token")
	}
	return &response, nil
}

// Logout invalidates the session server-side. The local session
// teardown does not depend on this call succeeding.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Do(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

// Profile fetches the current user's record.
func (s *AuthService) Profile(ctx context.Context) (User, error) {
	return apiclient.Get[User](ctx, s.client, "/api/auth/profile")
}

// UpdateProfile applies a partial update and returns the server's full
// authoritative record. Callers must replace their cached user with
// the returned value, never merge client-side.
func (s *AuthService) UpdateProfile(ctx context.Context, request UpdateProfileRequest) (User, error) {
	return apiclient.Put[User](ctx, s.client, "/api/auth/profile", request)
}

// ChangePassword changes the current user's password.
func (s *AuthService) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {
	_, err := s.client.Do(ctx, http.MethodPost, "/api/auth/change-password", request)
	return err
}
