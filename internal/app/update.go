package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/citedapp/cited/internal/clipboard"
	"github.com/citedapp/cited/internal/export"
	"github.com/citedapp/cited/internal/keys"
	"github.com/citedapp/cited/internal/logger"
	"github.com/citedapp/cited/internal/transcript"
	"github.com/citedapp/cited/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled, let it fall through to the focused panel

	case ChatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case GenerateResultMsg:
		return m.handleGenerateResult(msg)

	case ChatCreatedMsg:
		return m.handleChatCreated(msg)

	case ProjectCreatedMsg:
		return m.handleProjectCreated(msg)

	case MutationDoneMsg:
		return m.handleMutationDone(msg)

	case ChatDeletedMsg:
		return m.handleChatDeleted(msg)

	case ProjectDeletedMsg:
		return m.handleProjectDeleted(msg)

	case DocumentLoadedMsg:
		return m.handleDocumentLoaded(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg)

	case RatingSavedMsg:
		return m.handleRatingSaved(msg)

	case ui.FlashTickMsg:
		// Keep ticking until the flash expires so the footer redraws
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}

	// Tick messages go to both panels regardless of focus
	switch msg.(type) {
	case ui.SidebarTickMsg:
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	case ui.StopwatchTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// The document overlay swallows input while open
	if m.docView.IsVisible() {
		docView, cmd := m.docView.Update(msg)
		m.docView = docView
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress routes key presses. A nil model return means the key was
// not handled here and should fall through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Modal captures all keys while visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Document overlay: close keys, everything else scrolls
	if m.docView.IsVisible() {
		switch key {
		case keys.Escape, "q":
			m.docView.Hide()
			return m, nil
		}
		docView, cmd := m.docView.Update(msg)
		m.docView = docView
		return m, cmd
	}

	switch key {
	case keys.Tab:
		if m.activeChatID != "" {
			if m.focus == FocusSidebar {
				m.setFocus(FocusChat)
			} else {
				m.setFocus(FocusSidebar)
			}
		}
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(key)
	}
	return m.handleChatKey(key)
}

// handleSidebarKey handles keys while the sidebar has focus
func (m *Model) handleSidebarKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit

	case keys.Enter:
		if chat := m.sidebar.SelectedChat(); chat != nil {
			return m, m.openChat(chat.ID)
		}
		return m, nil

	case "n":
		state := ui.NewNewChatState(m.projects())
		// Preselect the project the cursor is in
		if project := m.sidebar.SelectedProject(); project != nil {
			for i, p := range state.Projects {
				if p.ID == project.ID {
					state.SelectedIndex = i + 1
				}
			}
		}
		m.modal.Show(state)
		return m, nil

	case "p":
		m.modal.Show(ui.NewNewProjectState())
		return m, nil

	case "f":
		if chat := m.sidebar.SelectedChat(); chat != nil {
			return m, m.toggleFavorite(chat.ID)
		}
		return m, nil

	case "r":
		if chat := m.sidebar.SelectedChat(); chat != nil {
			m.modal.Show(ui.NewRenameChatState(chat.ID, chat.Name))
		}
		return m, nil

	case "m":
		if chat := m.sidebar.SelectedChat(); chat != nil {
			m.modal.Show(ui.NewMoveToProjectState(chat.ID, m.projects()))
		}
		return m, nil

	case "e":
		if chat := m.sidebar.SelectedChat(); chat != nil {
			m.modal.Show(ui.NewExportFormatState(chat.ID, export.Formats()))
		}
		return m, nil

	case "d":
		if m.sidebar.IsProjectSelected() {
			if project := m.sidebar.SelectedProject(); project != nil {
				m.modal.Show(&ui.ConfirmDeleteProjectState{
					ProjectID:   project.ID,
					ProjectName: project.Name,
				})
			}
		} else if chat := m.sidebar.SelectedChat(); chat != nil {
			m.modal.Show(&ui.ConfirmDeleteChatState{
				ChatID:   chat.ID,
				ChatName: chat.Name,
			})
		}
		return m, nil
	}

	// Navigation keys fall through to the sidebar
	return nil, nil
}

// handleChatKey handles keys while the chat panel has focus
func (m *Model) handleChatKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter:
		return m, m.sendQuestion()

	case keys.CtrlN:
		m.chat.NextAnchor()
		return m, nil

	case keys.CtrlP:
		m.chat.PrevAnchor()
		return m, nil

	case keys.Escape:
		if m.chat.HasActiveAnchor() {
			m.chat.ClearAnchor()
			return m, nil
		}
		m.setFocus(FocusSidebar)
		return m, nil

	case keys.CtrlO:
		if cite, passages, ok := m.chat.ActiveCitation(); ok {
			return m, m.viewDocument(cite, passages)
		}
		return m, m.ShowFlashInfo("Select a citation first (ctrl+n)")

	case keys.CtrlY:
		if text, ok := m.chat.LastAnswerText(); ok {
			if err := clipboard.WriteText(text); err != nil {
				return m, m.ShowFlashError("Copy failed: " + err.Error())
			}
			return m, m.ShowFlashSuccess("Answer copied")
		}
		return m, nil

	case keys.CtrlG:
		return m.openRatingModal()
	}

	// Typing and scrolling fall through to the chat panel
	return nil, nil
}

// openChat makes the chat the foreground conversation, loading its history
// if it isn't cached yet.
func (m *Model) openChat(sessionID string) tea.Cmd {
	m.activeChatID = sessionID
	m.setFocus(FocusChat)
	name := m.activeChatName()

	var cmds []tea.Cmd

	if t, ok := m.transcripts[sessionID]; ok {
		m.chat.SetTranscript(name, t)
	} else {
		m.chat.SetTranscript(name, transcript.New(sessionID))
		cmds = append(cmds, m.loadHistory(sessionID))
	}

	// Restore the waiting indicator if this chat still has a question in flight
	if p, ok := m.pending[sessionID]; ok {
		m.chat.SetWaitingWithStart(true, p.StartedAt)
		cmds = append(cmds, ui.StopwatchTick())
	} else {
		m.chat.SetWaiting(false)
	}

	logger.Log("App: Opened chat %s", sessionID)
	return tea.Batch(cmds...)
}

// sendQuestion submits the input as a new question for the active chat
func (m *Model) sendQuestion() tea.Cmd {
	if m.activeChatID == "" {
		return nil
	}

	question := m.chat.GetInput()
	if question == "" {
		return nil
	}

	if _, ok := m.pending[m.activeChatID]; ok {
		return m.ShowFlashWarning("Still waiting on the previous answer")
	}

	t := m.transcripts[m.activeChatID]
	if t == nil {
		t = transcript.New(m.activeChatID)
		m.transcripts[m.activeChatID] = t
	}
	t.Append(transcript.NewUserMessage(question))

	m.chat.ClearInput()
	m.chat.SetTranscript(m.activeChatName(), t)
	m.chat.SetWaiting(true)

	m.pending[m.activeChatID] = pendingQuery{Question: question, StartedAt: time.Now()}
	m.sidebar.SetAwaiting(m.activeChatID, true)

	logger.Log("App: Sent question for %s: %q", m.activeChatID, question)

	return tea.Batch(
		m.generate(m.activeChatID, question),
		ui.SidebarTick(),
		ui.StopwatchTick(),
	)
}

// openRatingModal opens the feedback form for the latest exchange
func (m *Model) openRatingModal() (tea.Model, tea.Cmd) {
	t := m.activeTranscript()
	if t == nil {
		return m, nil
	}

	answer, ok := t.LastAnswer()
	if !ok {
		return m, m.ShowFlashInfo("Nothing to rate yet")
	}

	// Find the question that produced the latest answer
	question := ""
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == transcript.RoleUser {
			question = t.Messages[i].Text
			break
		}
	}

	m.modal.Show(ui.NewRatingState(question, answer.Text))
	return m, nil
}
