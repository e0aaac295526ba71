// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// registerOutcome tells the root model what to do after a register
// page update.
type registerOutcome int

const (
	registerOutcomeNone registerOutcome = iota
	// registerOutcomeBack returns to the login form.
	registerOutcomeBack
	// registerOutcomeSuccess enters the main view (registration signs
	// the new user in).
	registerOutcomeSuccess
)

// registerResultMsg reports the result of an asynchronous
// registration call.
type registerResultMsg struct {
	err error
}

const (
	registerFieldEmail = iota
	registerFieldPassword
	registerFieldConfirm
	registerFieldFirstName
	registerFieldLastName
	registerFieldPhone
)

// minPasswordLength is enforced client-side before the request is
// sent, mirroring the auth backend's own minimum.
const minPasswordLength = 8

// registerModel is the account creation form.
type registerModel struct {
	services Services
	theme    tui.Theme

	form       form
	submitting bool
	errText    string
}

func newRegisterModel(services Services, theme tui.Theme) registerModel {
	labels := []string{"Email", "Password", "Confirm password", "First name", "Last name", "Phone"}
	registrationForm := newForm(labels, func(index int, input *textinput.Model) {
		switch index {
		case registerFieldEmail:
			input.Placeholder = "you@example.com"
		case registerFieldPassword, registerFieldConfirm:
			input.EchoMode = textinput.EchoPassword
		case registerFieldPhone:
			input.Placeholder = "optional"
		}
	})
	return registerModel{services: services, theme: theme, form: registrationForm}
}

func (model *registerModel) Reset() {
	model.form.Reset()
	model.submitting = false
	model.errText = ""
}

func (model registerModel) Update(message tea.Msg) (registerModel, tea.Cmd, registerOutcome) {
	switch message := message.(type) {
	case registerResultMsg:
		model.submitting = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "registration failed")
			return model, nil, registerOutcomeNone
		}
		return model, nil, registerOutcomeSuccess

	case tea.KeyMsg:
		if model.submitting {
			return model, nil, registerOutcomeNone
		}
		switch message.Type {
		case tea.KeyEnter:
			return model.submit()
		case tea.KeyEsc:
			return model, nil, registerOutcomeBack
		}
	}

	var cmd tea.Cmd
	model.form, cmd = model.form.Update(message)
	return model, cmd, registerOutcomeNone
}

// submit validates the form locally before any request goes out:
// required fields present, passwords matching, and the password long
// enough. Validation failures never leave the client.
func (model registerModel) submit() (registerModel, tea.Cmd, registerOutcome) {
	request := banking.RegisterRequest{
		Email:     model.form.Value(registerFieldEmail),
		Password:  model.form.Value(registerFieldPassword),
		FirstName: model.form.Value(registerFieldFirstName),
		LastName:  model.form.Value(registerFieldLastName),
		Phone:     model.form.Value(registerFieldPhone),
	}

	switch {
	case request.Email == "" || request.Password == "" ||
		request.FirstName == "" || request.LastName == "":
		model.errText = "email, password, and name are required"
		return model, nil, registerOutcomeNone
	case len(request.Password) < minPasswordLength:
		model.errText = "password must be at least 8 characters"
		return model, nil, registerOutcomeNone
	case request.Password != model.form.Value(registerFieldConfirm):
		model.errText = "passwords do not match"
		return model, nil, registerOutcomeNone
	}

	model.submitting = true
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		err := services.Session.Register(context.Background(), request)
		return registerResultMsg{err: err}
	}, registerOutcomeNone
}

func (model registerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var builder []string
	builder = append(builder, titleStyle.Render("Create an account"), "")
	builder = append(builder, model.form.View(model.theme), "")

	switch {
	case model.submitting:
		builder = append(builder, helpStyle.Render("registering…"))
	case model.errText != "":
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		builder = append(builder, errorStyle.Render(model.errText))
	default:
		builder = append(builder, helpStyle.Render("Enter register · Esc back to sign-in"))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 3)
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, builder...))
}
