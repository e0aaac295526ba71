// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// profileMode is the interaction state within the profile tab.
type profileMode int

const (
	profileModeView profileMode = iota
	profileModeEdit
	profileModePassword
)

// profileSavedMsg reports a completed profile update.
type profileSavedMsg struct {
	err error
}

// passwordChangedMsg reports a completed password change.
type passwordChangedMsg struct {
	err error
}

const (
	editProfileFieldFirstName = iota
	editProfileFieldLastName
	editProfileFieldPhone
)

const (
	passwordFieldCurrent = iota
	passwordFieldNew
	passwordFieldConfirm
)

// profileModel is the profile tab: the signed-in user's details with
// edit and change-password forms. It reads the user from the session
// manager rather than holding its own copy, so a profile update made
// anywhere is reflected immediately.
type profileModel struct {
	services Services
	theme    tui.Theme

	width  int
	height int

	mode       profileMode
	submitting bool
	errText    string
	statusText string

	editForm     form
	passwordForm form
}

func newProfileModel(services Services, theme tui.Theme) profileModel {
	editForm := newForm([]string{"First name", "Last name", "Phone"}, nil)
	passwordForm := newForm(
		[]string{"Current password", "New password", "Confirm new"},
		func(index int, input *textinput.Model) {
			input.EchoMode = textinput.EchoPassword
		})
	return profileModel{
		services:     services,
		theme:        theme,
		editForm:     editForm,
		passwordForm: passwordForm,
	}
}

func (model *profileModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

func (model profileModel) capturesInput() bool {
	return model.mode != profileModeView
}

// show resets the tab to the read-only view (called on tab switch).
func (model *profileModel) show() {
	model.mode = profileModeView
	model.errText = ""
	model.statusText = ""
}

func (model profileModel) Update(message tea.Msg) (profileModel, tea.Cmd) {
	switch message := message.(type) {
	case profileSavedMsg:
		model.submitting = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "profile update failed")
			return model, nil
		}
		model.mode = profileModeView
		model.statusText = "profile updated"
		return model, nil

	case passwordChangedMsg:
		model.submitting = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "password change failed")
			return model, nil
		}
		model.mode = profileModeView
		model.statusText = "password changed"
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model profileModel) handleKey(message tea.KeyMsg) (profileModel, tea.Cmd) {
	keys := DefaultKeyMap

	switch model.mode {
	case profileModeEdit:
		if model.submitting {
			return model, nil
		}
		switch message.Type {
		case tea.KeyEnter:
			return model.submitEdit()
		case tea.KeyEsc:
			model.mode = profileModeView
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.editForm, cmd = model.editForm.Update(message)
		return model, cmd

	case profileModePassword:
		if model.submitting {
			return model, nil
		}
		switch message.Type {
		case tea.KeyEnter:
			return model.submitPassword()
		case tea.KeyEsc:
			model.mode = profileModeView
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.passwordForm, cmd = model.passwordForm.Update(message)
		return model, cmd
	}

	// View mode.
	switch {
	case key.Matches(message, keys.Edit):
		model.mode = profileModeEdit
		model.errText = ""
		model.statusText = ""
		model.editForm.Reset()
		if user := model.services.Session.User(); user != nil {
			model.editForm.inputs[editProfileFieldFirstName].SetValue(user.FirstName)
			model.editForm.inputs[editProfileFieldLastName].SetValue(user.LastName)
			model.editForm.inputs[editProfileFieldPhone].SetValue(user.Phone)
		}
		return model, textinput.Blink

	case key.Matches(message, keys.ChangePassword):
		model.mode = profileModePassword
		model.errText = ""
		model.statusText = ""
		model.passwordForm.Reset()
		return model, textinput.Blink
	}
	return model, nil
}

func (model profileModel) submitEdit() (profileModel, tea.Cmd) {
	request := banking.UpdateProfileRequest{
		FirstName: model.editForm.Value(editProfileFieldFirstName),
		LastName:  model.editForm.Value(editProfileFieldLastName),
		Phone:     model.editForm.Value(editProfileFieldPhone),
	}
	if request.FirstName == "" || request.LastName == "" {
		model.errText = "first and last name are required"
		return model, nil
	}

	model.submitting = true
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		_, err := services.Session.UpdateProfile(context.Background(), request)
		return profileSavedMsg{err: err}
	}
}

func (model profileModel) submitPassword() (profileModel, tea.Cmd) {
	current := model.passwordForm.Value(passwordFieldCurrent)
	next := model.passwordForm.Value(passwordFieldNew)
	confirm := model.passwordForm.Value(passwordFieldConfirm)

	switch {
	case current == "" || next == "":
		model.errText = "current and new password are required"
		return model, nil
	case len(next) < minPasswordLength:
		model.errText = "new password must be at least 8 characters"
		return model, nil
	case next != confirm:
		model.errText = "passwords do not match"
		return model, nil
	}

	model.submitting = true
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		err := services.Session.ChangePassword(context.Background(), banking.ChangePasswordRequest{
			CurrentPassword: current,
			NewPassword:     next,
		})
		return passwordChangedMsg{err: err}
	}
}

func (model profileModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(14)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	switch model.mode {
	case profileModeEdit:
		parts := []string{headerStyle.Render("Edit profile"), "", model.editForm.View(model.theme), ""}
		parts = append(parts, model.formFooter("Enter save · Esc cancel"))
		return padToHeight(strings.Join(parts, "\n"), model.height)

	case profileModePassword:
		parts := []string{headerStyle.Render("Change password"), "", model.passwordForm.View(model.theme), ""}
		parts = append(parts, model.formFooter("Enter change · Esc cancel"))
		return padToHeight(strings.Join(parts, "\n"), model.height)
	}

	user := model.services.Session.User()
	if user == nil {
		return padToHeight(faintLine(model.theme, "no session"), model.height)
	}

	rows := []string{
		headerStyle.Render("Profile"),
		"",
		labelStyle.Render("Name") + user.FullName(),
		labelStyle.Render("Email") + user.Email,
		labelStyle.Render("Phone") + orDash(user.Phone),
		labelStyle.Render("Member since") + formatTime(user.CreatedAt),
		"",
	}
	switch {
	case model.errText != "":
		rows = append(rows, errorStyle.Render(model.errText))
	case model.statusText != "":
		accentStyle := lipgloss.NewStyle().Foreground(model.theme.Accent)
		rows = append(rows, accentStyle.Render(model.statusText))
	default:
		rows = append(rows, helpStyle.Render("e edit · p change password"))
	}
	return padToHeight(strings.Join(rows, "\n"), model.height)
}

func (model profileModel) formFooter(help string) string {
	switch {
	case model.submitting:
		return faintLine(model.theme, "saving…")
	case model.errText != "":
		return lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(model.errText)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
