// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/banking"
)

func notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "notifications",
		Summary: "Manage notifications",
		Usage:   "portal notifications <subcommand> [flags]",
		Subcommands: []*cli.Command{
			notificationsListCommand(),
			notificationsShowCommand(),
			notificationsCreateCommand(),
			notificationsReadCommand(),
			notificationsDeleteCommand(),
		},
	}
}

func notificationsListCommand() *cli.Command {
	var outputJSON bool
	var unreadOnly bool

	return &cli.Command{
		Name:    "list",
		Summary: "List notifications",
		Usage:   "portal notifications list [--unread] [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVarP(&unreadOnly, "unread", "u", false, "only unread notifications")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			notifications, err := application.Notifications.List(ctx)
			if err != nil {
				return describe(err, "listing notifications")
			}
			if unreadOnly {
				unread := notifications[:0]
				for _, notification := range notifications {
					if !notification.IsRead {
						unread = append(unread, notification)
					}
				}
				notifications = unread
			}
			if outputJSON {
				return cli.WriteJSON(notifications)
			}
			if len(notifications) == 0 {
				fmt.Println("no notifications")
				return nil
			}
			return writeNotificationsTable(notifications)
		},
	}
}

func notificationsShowCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show a notification's full message",
		Usage:   "portal notifications show ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "notification")
			if err != nil {
				return err
			}
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			notification, err := application.Notifications.Get(ctx, id)
			if err != nil {
				return describe(err, "fetching notification %d", id)
			}
			if outputJSON {
				return cli.WriteJSON(notification)
			}
			fmt.Printf("%s [%s]\n\n%s\n", notification.Title, notification.Type, notification.Message)
			return nil
		},
	}
}

func notificationsCreateCommand() *cli.Command {
	var notificationType string
	var title string
	var message string

	return &cli.Command{
		Name:    "create",
		Summary: "Send a notification",
		Usage:   "portal notifications create --type TYPE --title TITLE --message TEXT",
		Examples: []cli.Example{
			{
				Description: "Send an email notification",
				Command:     "portal notifications create --type email --title 'Statement ready' --message 'Your March statement is ready.'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVarP(&notificationType, "type", "t", "", "delivery channel (email, sms, push, system)")
			flags.StringVar(&title, "title", "", "notification title")
			flags.StringVarP(&message, "message", "m", "", "notification body (Markdown rendered in the UI)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			switch banking.NotificationType(notificationType) {
			case banking.NotificationEmail, banking.NotificationSMS, banking.NotificationPush, banking.NotificationSystem:
			default:
				return cli.ValidationError("--type must be email, sms, push, or system")
			}
			if title == "" || message == "" {
				return cli.ValidationError("--title and --message are required")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			notification, err := application.Notifications.Create(ctx, banking.CreateNotificationRequest{
				Type:    banking.NotificationType(notificationType),
				Title:   title,
				Message: message,
			})
			if err != nil {
				return describe(err, "creating notification")
			}
			fmt.Printf("notification %d created\n", notification.ID)
			return nil
		},
	}
}

func notificationsReadCommand() *cli.Command {
	return &cli.Command{
		Name:    "read",
		Summary: "Mark a notification as read",
		Usage:   "portal notifications read ID",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "notification")
			if err != nil {
				return err
			}
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			if _, err := application.Notifications.MarkRead(ctx, id); err != nil {
				return describe(err, "marking notification %d read", id)
			}
			fmt.Printf("notification %d marked read\n", id)
			return nil
		},
	}
}

func notificationsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a notification",
		Usage:   "portal notifications delete ID",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "notification")
			if err != nil {
				return err
			}
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			if err := application.Notifications.Delete(ctx, id); err != nil {
				return describe(err, "deleting notification %d", id)
			}
			fmt.Printf("notification %d deleted\n", id)
			return nil
		},
	}
}
