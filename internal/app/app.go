// Package app wires the UI panels, the backend client, and the chat
// registry into the main Bubble Tea model.
package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/citedapp/cited/internal/api"
	"github.com/citedapp/cited/internal/config"
	"github.com/citedapp/cited/internal/registry"
	"github.com/citedapp/cited/internal/transcript"
	"github.com/citedapp/cited/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// pendingQuery tracks a question that is waiting on its answer
type pendingQuery struct {
	Question  string
	StartedAt time.Time
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	client  *api.Client
	version string // App version (injected at build time)

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	docView *ui.DocView
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Server-derived chat list, rebuilt on every mutation
	view registry.View

	// Conversation cache, keyed by session ID
	transcripts map[string]*transcript.Transcript

	// Session ID of the chat shown in the chat panel
	activeChatID string

	// Questions still waiting on an answer, keyed by session ID.
	// A result for a session with no pending entry is stale and dropped.
	pending map[string]pendingQuery

	// Chat to select in the sidebar after the next list refresh
	pendingSelect string
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	m := &Model{
		config:      cfg,
		client:      api.NewClient(cfg.GetBackendURL()),
		version:     version,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		sidebar:     ui.NewSidebar(),
		chat:        ui.NewChat(),
		docView:     ui.NewDocView(),
		modal:       ui.NewModal(),
		focus:       FocusSidebar,
		transcripts: make(map[string]*transcript.Transcript),
		pending:     make(map[string]pendingQuery),
	}

	m.sidebar.SetFocused(true)

	return m
}

// Init loads the chat list on startup
func (m *Model) Init() tea.Cmd {
	return m.loadChats()
}

// Client returns the backend client. For testing.
func (m *Model) Client() *api.Client {
	return m.client
}

// ActiveChatID returns the session ID shown in the chat panel
func (m *Model) ActiveChatID() string {
	return m.activeChatID
}

// activeTranscript returns the conversation of the active chat, or nil
func (m *Model) activeTranscript() *transcript.Transcript {
	if m.activeChatID == "" {
		return nil
	}
	return m.transcripts[m.activeChatID]
}

// activeChatName returns the display name of the active chat
func (m *Model) activeChatName() string {
	if chat, ok := m.view.Lookup(m.activeChatID); ok {
		if chat.Name != "" {
			return chat.Name
		}
	}
	return m.activeChatID
}

// projects returns the known projects, newest first
func (m *Model) projects() []registry.Project {
	projects := make([]registry.Project, 0, len(m.view.Projects))
	for _, group := range m.view.Projects {
		projects = append(projects, group.Project)
	}
	return projects
}

// setFocus moves focus between the sidebar and the chat panel
func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	m.chat.SetFocused(focus == FocusChat)
}
