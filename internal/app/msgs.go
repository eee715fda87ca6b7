package app

import (
	"github.com/citedapp/cited/internal/api"
	"github.com/citedapp/cited/internal/registry"
	"github.com/citedapp/cited/internal/transcript"
)

// ChatsLoadedMsg is sent when the chat list has been fetched
type ChatsLoadedMsg struct {
	View registry.View
	Err  error
}

// HistoryLoadedMsg is sent when a chat's history has been fetched
type HistoryLoadedMsg struct {
	SessionID  string
	Transcript *transcript.Transcript
	Err        error
}

// GenerateResultMsg is sent when an answer arrives (or generation failed)
type GenerateResultMsg struct {
	SessionID string
	Question  string
	Response  *api.GenerateResponse
	Err       error
}

// ChatCreatedMsg is sent when the backend registered a new chat
type ChatCreatedMsg struct {
	SessionID string
	ProjectID string
	Err       error
}

// ProjectCreatedMsg is sent when the backend registered a new project
type ProjectCreatedMsg struct {
	ProjectID string
	Name      string
	Err       error
}

// MutationDoneMsg is sent when a registry mutation finished.
// Action names the operation for flash and log messages.
type MutationDoneMsg struct {
	Action    string
	SessionID string
	Err       error
}

// ChatDeletedMsg is sent when a chat has been deleted
type ChatDeletedMsg struct {
	SessionID string
	Err       error
}

// ProjectDeletedMsg is sent when a project has been deleted
type ProjectDeletedMsg struct {
	ProjectID string
	Err       error
}

// DocumentLoadedMsg is sent when a cited source document has been fetched.
// Passages carries the citation's excerpts for the fallback view.
type DocumentLoadedMsg struct {
	SourceID string
	URL      string
	Document *api.DocumentResponse
	Passages []transcript.Passage
	Err      error
}

// ExportDoneMsg is sent when a transcript export finished
type ExportDoneMsg struct {
	SessionID string
	Path      string
	Err       error
}

// RatingSavedMsg is sent when answer feedback has been submitted
type RatingSavedMsg struct {
	Err error
}
