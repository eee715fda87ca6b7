package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	apperrors "github.com/citedapp/cited/internal/errors"
	"github.com/citedapp/cited/internal/export"
	"github.com/citedapp/cited/internal/logger"
	"github.com/citedapp/cited/internal/registry"
	"github.com/citedapp/cited/internal/transcript"
)

// loadChats fetches the chat list and project list and rebuilds the
// bucketed view. The project list keeps freshly created, still-empty
// projects visible; losing it degrades to the chat-derived buckets.
func (m *Model) loadChats() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListChats(context.Background())
		if err != nil {
			return ChatsLoadedMsg{Err: apperrors.SessionListFailed(err)}
		}
		projects, err := client.ListProjects(context.Background())
		if err != nil {
			logger.Warn("App: Failed to list projects, using chat buckets only: %v", err)
		}
		return ChatsLoadedMsg{View: registry.FromWire(list, projects)}
	}
}

// loadHistory fetches a chat's conversation history
func (m *Model) loadHistory(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		history, err := client.History(context.Background(), sessionID)
		if err != nil {
			return HistoryLoadedMsg{SessionID: sessionID, Err: apperrors.HistoryLoadFailed(sessionID, err)}
		}
		t := transcript.FromHistory(history)
		t.SessionID = sessionID
		return HistoryLoadedMsg{SessionID: sessionID, Transcript: t}
	}
}

// generate asks the backend for an answer to the question
func (m *Model) generate(sessionID, question string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Generate(context.Background(), sessionID, question)
		if err != nil {
			err = apperrors.GenerateFailed(sessionID, err)
		}
		return GenerateResultMsg{
			SessionID: sessionID,
			Question:  question,
			Response:  resp,
			Err:       err,
		}
	}
}

// newChat registers a new chat, optionally inside a project
func (m *Model) newChat(projectID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.NewChat(context.Background(), projectID)
		if err != nil {
			return ChatCreatedMsg{ProjectID: projectID, Err: err}
		}
		return ChatCreatedMsg{SessionID: resp.SessionID, ProjectID: projectID}
	}
}

// createProject registers a new project
func (m *Model) createProject(name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projectID, err := client.CreateProject(context.Background(), name)
		if err != nil {
			return ProjectCreatedMsg{Name: name, Err: err}
		}
		return ProjectCreatedMsg{ProjectID: projectID, Name: name}
	}
}

// toggleFavorite flips a chat's favorite flag
func (m *Model) toggleFavorite(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.ToggleFavorite(context.Background(), sessionID)
		return MutationDoneMsg{Action: "favorite", SessionID: sessionID, Err: err}
	}
}

// renameChat renames a chat
func (m *Model) renameChat(sessionID, name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.RenameChat(context.Background(), sessionID, name)
		return MutationDoneMsg{Action: "rename", SessionID: sessionID, Err: err}
	}
}

// moveToProject moves a chat into a project, or unfiles it when projectID
// is empty
func (m *Model) moveToProject(sessionID, projectID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.MoveToProject(context.Background(), sessionID, projectID)
		return MutationDoneMsg{Action: "move", SessionID: sessionID, Err: err}
	}
}

// deleteChat deletes a chat and its history
func (m *Model) deleteChat(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteChat(context.Background(), sessionID)
		return ChatDeletedMsg{SessionID: sessionID, Err: err}
	}
}

// deleteProject deletes a project; its chats fall back to unfiled
func (m *Model) deleteProject(projectID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), projectID)
		return ProjectDeletedMsg{ProjectID: projectID, Err: err}
	}
}

// viewDocument fetches the full text of a cited source with its
// highlight spans. The citation's passages ride along for the fallback view.
func (m *Model) viewDocument(cite transcript.Citation, passages []transcript.Passage) tea.Cmd {
	client := m.client
	wire := transcript.PassagesToWire(passages)
	return func() tea.Msg {
		doc, err := client.ViewDocument(context.Background(), cite.SourceID, wire)
		if err != nil {
			err = apperrors.DocumentLoadFailed(cite.SourceID, err)
		}
		return DocumentLoadedMsg{
			SourceID: cite.SourceID,
			URL:      cite.URL,
			Document: doc,
			Passages: passages,
			Err:      err,
		}
	}
}

// exportTranscript writes the conversation to a file in the working
// directory using the chosen format.
func (m *Model) exportTranscript(t *transcript.Transcript, format string) tea.Cmd {
	return func() tea.Msg {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return ExportDoneMsg{SessionID: t.SessionID, Err: apperrors.ExportFailed(t.SessionID, err)}
		}

		name := fmt.Sprintf("chat-%s-%s.%s",
			shortID(t.SessionID),
			time.Now().Format("20060102-150405"),
			exporter.Extension(),
		)

		f, err := os.Create(name)
		if err != nil {
			return ExportDoneMsg{SessionID: t.SessionID, Err: apperrors.ExportFailed(t.SessionID, err)}
		}
		defer f.Close()

		if err := exporter.Export(t, f); err != nil {
			return ExportDoneMsg{SessionID: t.SessionID, Err: apperrors.ExportFailed(t.SessionID, err)}
		}

		logger.Info("App: Exported chat %s to %s", t.SessionID, name)
		return ExportDoneMsg{SessionID: t.SessionID, Path: name}
	}
}

// exportChat exports a chat, fetching its history first when it isn't
// cached locally.
func (m *Model) exportChat(sessionID, format string) tea.Cmd {
	if t, ok := m.transcripts[sessionID]; ok {
		return m.exportTranscript(t, format)
	}

	client := m.client
	exportFn := m.exportTranscript
	return func() tea.Msg {
		history, err := client.History(context.Background(), sessionID)
		if err != nil {
			return ExportDoneMsg{SessionID: sessionID, Err: apperrors.HistoryLoadFailed(sessionID, err)}
		}
		t := transcript.FromHistory(history)
		t.SessionID = sessionID
		return exportFn(t, format)()
	}
}

// saveRating submits answer feedback
func (m *Model) saveRating(question, answer string, rating int, reason, comments string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SaveRating(context.Background(), question, answer, rating, reason, comments)
		if err != nil {
			err = apperrors.RatingSaveFailed(err)
		}
		return RatingSavedMsg{Err: err}
	}
}

// shortID returns the first path-safe chunk of a session ID for filenames
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
