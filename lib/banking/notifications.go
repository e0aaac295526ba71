// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import (
	"context"
	"fmt"

	"github.com/ledgerline/portal/lib/apiclient"
)

// NotificationsService talks to the notifications backend.
type NotificationsService struct {
	client *apiclient.Client
}

// NewNotificationsService creates a NotificationsService over the
// shared gateway.
func NewNotificationsService(client *apiclient.Client) *NotificationsService {
	return &NotificationsService{client: client}
}

// List returns the current user's notifications, newest first.
func (s *NotificationsService) List(ctx context.Context) ([]Notification, error) {
	return apiclient.Get[[]Notification](ctx, s.client, "/api/notifications/")
}

// Get returns one notification by id.
func (s *NotificationsService) Get(ctx context.Context, id uint) (Notification, error) {
	return apiclient.Get[Notification](ctx, s.client, fmt.Sprintf("/api/notifications/%d", id))
}

// Create records a notification for the current user.
func (s *NotificationsService) Create(ctx context.Context, request CreateNotificationRequest) (Notification, error) {
	return apiclient.Post[Notification](ctx, s.client, "/api/notifications/", request)
}

// MarkRead flags a notification as read and returns the updated
// record.
func (s *NotificationsService) MarkRead(ctx context.Context, id uint) (Notification, error) {
	return apiclient.Put[Notification](ctx, s.client, fmt.Sprintf("/api/notifications/%d/read", id), nil)
}

// Delete removes a notification.
func (s *NotificationsService) Delete(ctx context.Context, id uint) error {
	return apiclient.Delete(ctx, s.client, fmt.Sprintf("/api/notifications/%d", id))
}
