package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/citedapp/cited/internal/keys"
	"github.com/citedapp/cited/internal/ui"
)

// handleModalKey routes keys while a modal is open. Enter submits, Escape
// cancels, everything else goes to the modal's own Update.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		return m.handleModalSubmit()

	case "y":
		// Confirmations also accept y
		switch m.modal.State.(type) {
		case *ui.ConfirmDeleteChatState, *ui.ConfirmDeleteProjectState:
			return m.handleModalSubmit()
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleModalSubmit executes the action behind the open modal
func (m *Model) handleModalSubmit() (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *ui.NewChatState:
		projectID := state.SelectedProjectID()
		m.modal.Hide()
		return m, m.newChat(projectID)

	case *ui.NewProjectState:
		name := state.Name()
		if name == "" {
			m.modal.SetError("Project name is required")
			return m, nil
		}
		m.modal.Hide()
		return m, m.createProject(name)

	case *ui.RenameChatState:
		name := state.Name()
		if name == "" {
			m.modal.SetError("Chat name is required")
			return m, nil
		}
		m.modal.Hide()
		return m, m.renameChat(state.ChatID, name)

	case *ui.MoveToProjectState:
		chatID := state.ChatID
		projectID := state.SelectedProjectID()
		m.modal.Hide()
		return m, m.moveToProject(chatID, projectID)

	case *ui.ConfirmDeleteChatState:
		chatID := state.ChatID
		m.modal.Hide()
		return m, m.deleteChat(chatID)

	case *ui.ConfirmDeleteProjectState:
		projectID := state.ProjectID
		m.modal.Hide()
		return m, m.deleteProject(projectID)

	case *ui.ExportFormatState:
		chatID := state.ChatID
		format := state.SelectedFormat()
		m.modal.Hide()
		return m, m.exportChat(chatID, format)

	case *ui.RatingState:
		cmd := m.saveRating(state.Question, state.Answer, state.RatingValue, state.Reason, state.Comments)
		m.modal.Hide()
		return m, cmd
	}

	m.modal.Hide()
	return m, nil
}
