package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/citedapp/cited/internal/logger"
	"github.com/citedapp/cited/internal/notification"
	"github.com/citedapp/cited/internal/transcript"
	"github.com/citedapp/cited/internal/ui"
)

// handleChatsLoaded swaps in a freshly fetched chat list
func (m *Model) handleChatsLoaded(msg ChatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to load chats: %v", msg.Err)
		return m, m.ShowFlashError("Couldn't load chats: " + msg.Err.Error())
	}

	m.view = msg.View
	m.sidebar.SetView(msg.View)

	if m.pendingSelect != "" {
		m.sidebar.SelectChat(m.pendingSelect)
		m.pendingSelect = ""
	}

	// The active chat may have been deleted elsewhere
	if m.activeChatID != "" {
		if _, ok := m.view.Lookup(m.activeChatID); !ok {
			logger.Log("App: Active chat %s disappeared from the registry", m.activeChatID)
			m.closeActiveChat()
		}
	}

	return m, nil
}

// handleHistoryLoaded caches a fetched conversation and shows it if the
// chat is still in the foreground
func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to load history for %s: %v", msg.SessionID, msg.Err)
		return m, m.ShowFlashError("Couldn't load chat history")
	}

	m.transcripts[msg.SessionID] = msg.Transcript

	if msg.SessionID == m.activeChatID {
		m.chat.SetTranscript(m.activeChatName(), msg.Transcript)
		if p, ok := m.pending[msg.SessionID]; ok {
			m.chat.SetWaitingWithStart(true, p.StartedAt)
			return m, ui.StopwatchTick()
		}
	}

	return m, nil
}

// handleGenerateResult lands an answer in its conversation. Results for
// sessions with no pending question are stale and never touch a transcript.
func (m *Model) handleGenerateResult(msg GenerateResultMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.pending[msg.SessionID]; !ok {
		logger.Log("App: Dropping stale answer for %s", msg.SessionID)
		if msg.Err == nil {
			// The backend still recorded the exchange
			return m, m.loadChats()
		}
		return m, nil
	}

	delete(m.pending, msg.SessionID)
	m.sidebar.SetAwaiting(msg.SessionID, false)

	foreground := msg.SessionID == m.activeChatID

	t := m.transcripts[msg.SessionID]
	if t == nil {
		t = transcript.New(msg.SessionID)
		m.transcripts[msg.SessionID] = t
	}

	if msg.Err != nil {
		logger.Error("App: Generation failed for %s: %v", msg.SessionID, msg.Err)
		t.Append(transcript.Apology())
		if foreground {
			m.chat.SetWaiting(false)
			m.chat.SetTranscript(m.activeChatName(), t)
		}
		return m, m.ShowFlashError("Answer generation failed")
	}

	t.Append(transcript.NewAIMessage(
		msg.Response.Answer,
		msg.Response.Citations,
		msg.Response.HighlightedPassages,
	))

	var cmds []tea.Cmd

	if foreground {
		m.chat.SetWaiting(false)
		m.chat.SetTranscript(m.activeChatName(), t)
	} else if m.config.GetNotificationsEnabled() {
		name := ""
		if chat, ok := m.view.Lookup(msg.SessionID); ok {
			name = chat.Name
		}
		if err := notification.AnswerReady(name); err != nil {
			logger.Warn("App: Notification failed: %v", err)
		}
	}

	// Names and summaries change server-side after each exchange
	cmds = append(cmds, m.loadChats())

	return m, tea.Batch(cmds...)
}

// handleChatCreated opens the newly registered chat
func (m *Model) handleChatCreated(msg ChatCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to create chat: %v", msg.Err)
		return m, m.ShowFlashError("Couldn't create chat")
	}

	m.activeChatID = msg.SessionID
	m.transcripts[msg.SessionID] = transcript.New(msg.SessionID)
	m.chat.SetTranscript("New chat", m.transcripts[msg.SessionID])
	m.chat.SetWaiting(false)
	m.setFocus(FocusChat)
	m.pendingSelect = msg.SessionID

	return m, m.loadChats()
}

// handleProjectCreated refreshes the list with the new project
func (m *Model) handleProjectCreated(msg ProjectCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to create project %q: %v", msg.Name, msg.Err)
		return m, m.ShowFlashError("Couldn't create project")
	}
	return m, tea.Batch(
		m.ShowFlashSuccess("Project created"),
		m.loadChats(),
	)
}

// handleMutationDone refreshes the list after a registry mutation
func (m *Model) handleMutationDone(msg MutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: %s failed for %s: %v", msg.Action, msg.SessionID, msg.Err)
		return m, m.ShowFlashError("Update failed: " + msg.Err.Error())
	}
	return m, m.loadChats()
}

// handleChatDeleted drops all local state for a deleted chat
func (m *Model) handleChatDeleted(msg ChatDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to delete chat %s: %v", msg.SessionID, msg.Err)
		return m, m.ShowFlashError("Couldn't delete chat")
	}

	delete(m.transcripts, msg.SessionID)
	delete(m.pending, msg.SessionID)
	m.sidebar.SetAwaiting(msg.SessionID, false)

	if msg.SessionID == m.activeChatID {
		m.closeActiveChat()
	}

	return m, tea.Batch(
		m.ShowFlashSuccess("Chat deleted"),
		m.loadChats(),
	)
}

// handleProjectDeleted refreshes the list; orphaned chats land in unfiled
func (m *Model) handleProjectDeleted(msg ProjectDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to delete project %s: %v", msg.ProjectID, msg.Err)
		return m, m.ShowFlashError("Couldn't delete project")
	}
	return m, tea.Batch(
		m.ShowFlashSuccess("Project deleted"),
		m.loadChats(),
	)
}

// handleDocumentLoaded opens the document overlay, falling back to the
// citation's excerpts when the fetch failed
func (m *Model) handleDocumentLoaded(msg DocumentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Warn("App: Couldn't load document %s, showing excerpts: %v", msg.SourceID, msg.Err)
		m.docView.ShowExcerpts(msg.SourceID, msg.Passages)
		return m, m.ShowFlashWarning("Document unavailable, showing cited passages")
	}

	m.docView.Show(msg.Document, msg.URL)
	return m, nil
}

// handleExportDone reports the export outcome
func (m *Model) handleExportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Export failed for %s: %v", msg.SessionID, msg.Err)
		return m, m.ShowFlashError("Export failed: " + msg.Err.Error())
	}
	return m, m.ShowFlashSuccess("Exported to " + msg.Path)
}

// handleRatingSaved reports the feedback outcome
func (m *Model) handleRatingSaved(msg RatingSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("App: Failed to save rating: %v", msg.Err)
		return m, m.ShowFlashError("Couldn't save feedback")
	}
	return m, m.ShowFlashSuccess("Feedback saved")
}

// closeActiveChat clears the foreground conversation
func (m *Model) closeActiveChat() {
	m.activeChatID = ""
	m.chat.ClearChat()
	m.docView.Hide()
	m.setFocus(FocusSidebar)
}
