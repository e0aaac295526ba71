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

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Show or update the user profile",
		Usage:   "portal profile <subcommand> [flags]",
		Subcommands: []*cli.Command{
			profileShowCommand(),
			profileUpdateCommand(),
		},
	}
}

func profileShowCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show the current profile",
		Usage:   "portal profile show [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
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
			user, err := application.Auth.Profile(ctx)
			if err != nil {
				return describe(err, "fetching profile")
			}
			if outputJSON {
				return cli.WriteJSON(user)
			}
			return writeUser(user)
		},
	}
}

func profileUpdateCommand() *cli.Command {
	var firstName string
	var lastName string
	var phone string

	return &cli.Command{
		Name:    "update",
		Summary: "Update profile fields",
		Description: `Update one or more profile fields. Only the flags you pass are sent;
the backend returns the full updated record, which replaces the stored
session snapshot.`,
		Usage: "portal profile update [--first-name NAME] [--last-name NAME] [--phone PHONE]",
		Examples: []cli.Example{
			{
				Description: "Change the phone number only",
				Command:     "portal profile update --phone '+1 555 0100'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&firstName, "first-name", "", "given name")
			flags.StringVar(&lastName, "last-name", "", "family name")
			flags.StringVar(&phone, "phone", "", "phone number")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if firstName == "" && lastName == "" && phone == "" {
				return cli.ValidationError("nothing to update: pass at least one of --first-name, --last-name, --phone")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			user, err := application.Session.UpdateProfile(ctx, banking.UpdateProfileRequest{
				FirstName: firstName,
				LastName:  lastName,
				Phone:     phone,
			})
			if err != nil {
				return describe(err, "updating profile")
			}
			fmt.Println("profile updated")
			return writeUser(user)
		},
	}
}

func changePasswordCommand() *cli.Command {
	return &cli.Command{
		Name:    "change-password",
		Summary: "Change the account password",
		Description: `Change the password for the signed-in user. Both the current and the
new password are prompted without echo. The session token stays valid.`,
		Usage: "portal change-password",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}

			current, err := cli.PromptPassword("Current password")
			if err != nil {
				return err
			}
			next, err := cli.PromptPassword("New password")
			if err != nil {
				return err
			}
			if current == "" || next == "" {
				return cli.ValidationError("passwords must not be empty")
			}
			if len(next) < 8 {
				return cli.ValidationError("new password must be at least 8 characters")
			}
			confirm, err := cli.PromptPassword("Confirm new password")
			if err != nil {
				return err
			}
			if next != confirm {
				return cli.ValidationError("new passwords do not match")
			}

			if err := application.Session.ChangePassword(ctx, banking.ChangePasswordRequest{
				CurrentPassword: current,
				NewPassword:     next,
			}); err != nil {
				return describe(err, "changing password")
			}
			fmt.Println("password changed")
			return nil
		},
	}
}
