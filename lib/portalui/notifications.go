// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// notificationsMode is the interaction state within the
// notifications tab.
type notificationsMode int

const (
	notificationsModeList notificationsMode = iota
	notificationsModeDetail
	notificationsModeCreate
)

// notificationsListMsg carries a completed notification list fetch.
type notificationsListMsg struct {
	seq           int
	notifications []banking.Notification
	err           error
}

// notificationMutatedMsg reports a mark-read, delete, or create.
type notificationMutatedMsg struct {
	err error
}

const (
	createNotificationFieldType = iota
	createNotificationFieldTitle
	createNotificationFieldMessage
)

// notificationsModel is the notifications tab: an inbox-style list
// with a markdown-rendered detail view.
type notificationsModel struct {
	services Services
	theme    tui.Theme

	width  int
	height int

	mode    notificationsMode
	seq     int
	loading bool
	errText string

	notifications []banking.Notification
	cursor        int
	scrollOffset  int

	detail         banking.Notification
	detailViewport viewport.Model

	createForm form
}

func newNotificationsModel(services Services, theme tui.Theme) notificationsModel {
	createForm := newForm([]string{"Type", "Title", "Message"}, func(index int, input *textinput.Model) {
		switch index {
		case createNotificationFieldType:
			input.Placeholder = "email | sms | push | system"
		case createNotificationFieldMessage:
			input.CharLimit = 1024
			input.Width = 60
		}
	})
	return notificationsModel{
		services:       services,
		theme:          theme,
		detailViewport: viewport.New(0, 0),
		createForm:     createForm,
	}
}

func (model *notificationsModel) setSize(width, height int) {
	model.width = width
	model.height = height
	model.detailViewport.Width = width
	detailHeight := height - 5
	if detailHeight < 1 {
		detailHeight = 1
	}
	model.detailViewport.Height = detailHeight
	if model.mode == notificationsModeDetail {
		model.renderDetail()
	}
}

func (model notificationsModel) capturesInput() bool {
	return model.mode == notificationsModeCreate
}

func (model *notificationsModel) load() tea.Cmd {
	model.seq++
	model.loading = true
	model.errText = ""
	model.mode = notificationsModeList

	seq := model.seq
	services := model.services
	return func() tea.Msg {
		notifications, err := services.Notifications.List(context.Background())
		return notificationsListMsg{seq: seq, notifications: notifications, err: err}
	}
}

func (model notificationsModel) Update(message tea.Msg) (notificationsModel, tea.Cmd) {
	switch message := message.(type) {
	case notificationsListMsg:
		if message.seq != model.seq {
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "loading notifications failed")
			return model, nil
		}
		model.notifications = message.notifications
		model.clampCursor()
		return model, nil

	case notificationMutatedMsg:
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "notification update failed")
			return model, nil
		}
		return model, model.load()

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model notificationsModel) handleKey(message tea.KeyMsg) (notificationsModel, tea.Cmd) {
	keys := DefaultKeyMap

	switch model.mode {
	case notificationsModeCreate:
		switch message.Type {
		case tea.KeyEnter:
			return model.submitCreate()
		case tea.KeyEsc:
			model.mode = notificationsModeList
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.createForm, cmd = model.createForm.Update(message)
		return model, cmd

	case notificationsModeDetail:
		switch {
		case key.Matches(message, keys.Back):
			model.mode = notificationsModeList
		case key.Matches(message, keys.Up):
			model.detailViewport.LineUp(1)
		case key.Matches(message, keys.Down):
			model.detailViewport.LineDown(1)
		case key.Matches(message, keys.PageUp):
			model.detailViewport.HalfViewUp()
		case key.Matches(message, keys.PageDown):
			model.detailViewport.HalfViewDown()
		case key.Matches(message, keys.MarkRead):
			return model.markRead(model.detail.ID)
		}
		return model, nil
	}

	// List mode.
	switch {
	case key.Matches(message, keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, keys.Down):
		model.moveCursor(1)
	case key.Matches(message, keys.Home):
		model.cursor = 0
		model.clampCursor()
	case key.Matches(message, keys.End):
		model.cursor = len(model.notifications) - 1
		model.clampCursor()
	case key.Matches(message, keys.Refresh):
		return model, model.load()
	case key.Matches(message, keys.New):
		model.mode = notificationsModeCreate
		model.createForm.Reset()
		model.errText = ""
		return model, textinput.Blink
	case key.Matches(message, keys.Select):
		if notification, ok := model.selected(); ok {
			model.mode = notificationsModeDetail
			model.detail = notification
			model.renderDetail()
			// Opening an unread notification marks it read, matching
			// inbox behavior.
			if !notification.IsRead {
				return model.markRead(notification.ID)
			}
		}
	case key.Matches(message, keys.MarkRead):
		if notification, ok := model.selected(); ok && !notification.IsRead {
			return model.markRead(notification.ID)
		}
	case key.Matches(message, keys.Delete):
		if notification, ok := model.selected(); ok {
			services := model.services
			return model, func() tea.Msg {
				err := services.Notifications.Delete(context.Background(), notification.ID)
				return notificationMutatedMsg{err: err}
			}
		}
	}
	return model, nil
}

func (model notificationsModel) selected() (banking.Notification, bool) {
	if model.cursor < 0 || model.cursor >= len(model.notifications) {
		return banking.Notification{}, false
	}
	return model.notifications[model.cursor], true
}

func (model *notificationsModel) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *notificationsModel) clampCursor() {
	if model.cursor >= len(model.notifications) {
		model.cursor = len(model.notifications) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	visible := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if visible > 0 && model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

func (model notificationsModel) listHeight() int {
	height := model.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

// markRead marks a notification read. The detail stays open; the
// refetched list updates the row's unread marker.
func (model notificationsModel) markRead(notificationID uint) (notificationsModel, tea.Cmd) {
	model.detail.IsRead = true
	services := model.services
	seq := model.seq
	return model, func() tea.Msg {
		_, err := services.Notifications.MarkRead(context.Background(), notificationID)
		if err != nil {
			return notificationMutatedMsg{err: err}
		}
		notifications, err := services.Notifications.List(context.Background())
		return notificationsListMsg{seq: seq, notifications: notifications, err: err}
	}
}

func (model notificationsModel) submitCreate() (notificationsModel, tea.Cmd) {
	notificationType := banking.NotificationType(strings.ToLower(model.createForm.Value(createNotificationFieldType)))
	switch notificationType {
	case banking.NotificationEmail, banking.NotificationSMS,
		banking.NotificationPush, banking.NotificationSystem:
	default:
		model.errText = "type must be email, sms, push, or system"
		return model, nil
	}

	request := banking.CreateNotificationRequest{
		Type:    notificationType,
		Title:   model.createForm.Value(createNotificationFieldTitle),
		Message: model.createForm.Value(createNotificationFieldMessage),
	}
	if request.Title == "" || request.Message == "" {
		model.errText = "title and message are required"
		return model, nil
	}

	model.mode = notificationsModeList
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		_, err := services.Notifications.Create(context.Background(), request)
		return notificationMutatedMsg{err: err}
	}
}

// renderDetail fills the viewport with the markdown-rendered body of
// the open notification.
func (model *notificationsModel) renderDetail() {
	width := model.width - 2
	if width < 20 {
		width = 20
	}
	model.detailViewport.SetContent(renderTerminalMarkdown(model.detail.Message, model.theme, width))
	model.detailViewport.GotoTop()
}

func (model notificationsModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	switch model.mode {
	case notificationsModeCreate:
		var parts []string
		parts = append(parts, headerStyle.Render("New notification"), "",
			model.createForm.View(model.theme), "")
		if model.errText != "" {
			parts = append(parts, errorStyle.Render(model.errText))
		} else {
			parts = append(parts, helpStyle.Render("Enter create · Esc cancel"))
		}
		return padToHeight(strings.Join(parts, "\n"), model.height)

	case notificationsModeDetail:
		unreadStyle := lipgloss.NewStyle().Foreground(model.theme.UnreadAccent)
		title := headerStyle.Render(model.detail.Title)
		meta := faintLine(model.theme, fmt.Sprintf("%s · %s", model.detail.Type, formatTime(model.detail.CreatedAt)))
		if !model.detail.IsRead {
			meta += "  " + unreadStyle.Render("unread")
		}
		return padToHeight(strings.Join([]string{
			title,
			meta,
			"",
			model.detailViewport.View(),
			helpStyle.Render("j/k scroll · m mark read · Esc back"),
		}, "\n"), model.height)
	}

	if model.loading {
		return padToHeight(faintLine(model.theme, "loading…"), model.height)
	}

	unread := 0
	for _, notification := range model.notifications {
		if !notification.IsRead {
			unread++
		}
	}

	var parts []string
	parts = append(parts, headerStyle.Render(
		fmt.Sprintf("Notifications (%d, %d unread)", len(model.notifications), unread)))
	if model.errText != "" {
		parts = append(parts, errorStyle.Render(model.errText))
	}

	visible := model.listHeight()
	end := model.scrollOffset + visible
	if end > len(model.notifications) {
		end = len(model.notifications)
	}
	for index := model.scrollOffset; index < end; index++ {
		notification := model.notifications[index]
		marker := "  "
		titleStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if !notification.IsRead {
			marker = lipgloss.NewStyle().Foreground(model.theme.UnreadAccent).Render("● ")
			titleStyle = titleStyle.Bold(true)
		}
		row := fmt.Sprintf(" %s%s  %-8s %s",
			marker,
			formatTime(notification.CreatedAt),
			notification.Type,
			titleStyle.Render(notification.Title))
		row = ansi.Truncate(row, model.width, "…")
		if index == model.cursor {
			row = lipgloss.NewStyle().
				Foreground(model.theme.SelectedForeground).
				Background(model.theme.SelectedBackground).
				Render(ansi.Strip(row))
		}
		parts = append(parts, row)
	}
	if len(model.notifications) == 0 && model.errText == "" {
		parts = append(parts, faintLine(model.theme, " inbox empty"))
	}

	parts = append(parts, "", helpStyle.Render("Enter open · m mark read · n new · x delete · r refresh"))
	return padToHeight(strings.Join(parts, "\n"), model.height)
}
