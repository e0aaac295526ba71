// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/portalui"
)

func uiCommand() *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive terminal UI",
		Description: `Open the full-screen terminal UI. Without a stored session the UI
starts on the sign-in screen; with one it restores straight into the
dashboard. Color overrides are read from the theme file
(~/.config/portal/theme.jsonc by default).`,
		Usage: "portal ui",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			application, err := newApp(logger)
			if err != nil {
				return err
			}

			theme, err := portalui.LoadTheme(application.Config.ThemeFile)
			if err != nil {
				return fmt.Errorf("loading theme: %w", err)
			}

			model := portalui.NewModel(portalui.Services{
				Session:       application.Session,
				Accounts:      application.Accounts,
				Transactions:  application.Transactions,
				Notifications: application.Notifications,
			}, theme)

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running terminal UI: %w", err)
			}
			return nil
		},
	}
}
