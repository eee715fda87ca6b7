package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/citedapp/cited/internal/keys"
	"github.com/citedapp/cited/internal/registry"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// renderOptions renders a vertical option list with a selection marker
func renderOptions(options []string, selectedIdx int) string {
	var sb strings.Builder
	for i, opt := range options {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == selectedIdx {
			sb.WriteString(ModalSelectedStyle.Render("> " + opt))
		} else {
			sb.WriteString(ModalUnselectedStyle.Render("  " + opt))
		}
	}
	return sb.String()
}

// moveSelection applies up/down navigation keys to an option index
func moveSelection(key string, idx, count int) int {
	switch key {
	case keys.Up, "k":
		if idx > 0 {
			return idx - 1
		}
	case keys.Down, "j":
		if idx < count-1 {
			return idx + 1
		}
	}
	return idx
}

// newModalInput creates a text input sized for modals
func newModalInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()
	return ti
}

// =============================================================================
// NewChatState - pick the project for a new chat
// =============================================================================

type NewChatState struct {
	Projects      []registry.Project
	SelectedIndex int
}

// NewNewChatState creates the project picker for a new chat
func NewNewChatState(projects []registry.Project) *NewChatState {
	return &NewChatState{Projects: projects}
}

func (*NewChatState) modalState() {}

func (s *NewChatState) Title() string { return "New Chat" }

func (s *NewChatState) Help() string {
	return "↑/↓ to choose, Enter to create, Esc to cancel"
}

func (s *NewChatState) options() []string {
	options := []string{"No project"}
	for _, p := range s.Projects {
		options = append(options, p.Name)
	}
	return options
}

// SelectedProjectID returns the chosen project ID, empty for no project
func (s *NewChatState) SelectedProjectID() string {
	if s.SelectedIndex == 0 {
		return ""
	}
	return s.Projects[s.SelectedIndex-1].ID
}

func (s *NewChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := renderOptions(s.options(), s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *NewChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		s.SelectedIndex = moveSelection(keyMsg.String(), s.SelectedIndex, len(s.options()))
	}
	return s, nil
}

// =============================================================================
// NewProjectState - name a new project
// =============================================================================

type NewProjectState struct {
	Input textinput.Model
}

// NewNewProjectState creates the new project name prompt
func NewNewProjectState() *NewProjectState {
	return &NewProjectState{Input: newModalInput("Project name")}
}

func (*NewProjectState) modalState() {}

func (s *NewProjectState) Title() string { return "New Project" }

func (s *NewProjectState) Help() string {
	return "Enter to create, Esc to cancel"
}

// Name returns the entered project name
func (s *NewProjectState) Name() string {
	return strings.TrimSpace(s.Input.Value())
}

func (s *NewProjectState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *NewProjectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// =============================================================================
// RenameChatState - rename an existing chat
// =============================================================================

type RenameChatState struct {
	ChatID string
	Input  textinput.Model
}

// NewRenameChatState creates the rename prompt prefilled with the current name
func NewRenameChatState(chatID, currentName string) *RenameChatState {
	input := newModalInput("Chat name")
	input.SetValue(currentName)
	return &RenameChatState{ChatID: chatID, Input: input}
}

func (*RenameChatState) modalState() {}

func (s *RenameChatState) Title() string { return "Rename Chat" }

func (s *RenameChatState) Help() string {
	return "Enter to rename, Esc to cancel"
}

// Name returns the entered chat name
func (s *RenameChatState) Name() string {
	return strings.TrimSpace(s.Input.Value())
}

func (s *RenameChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *RenameChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// =============================================================================
// MoveToProjectState - move a chat into a project (or out of one)
// =============================================================================

type MoveToProjectState struct {
	ChatID        string
	Projects      []registry.Project
	SelectedIndex int
}

// NewMoveToProjectState creates the project picker for moving a chat
func NewMoveToProjectState(chatID string, projects []registry.Project) *MoveToProjectState {
	return &MoveToProjectState{ChatID: chatID, Projects: projects}
}

func (*MoveToProjectState) modalState() {}

func (s *MoveToProjectState) Title() string { return "Move to Project" }

func (s *MoveToProjectState) Help() string {
	return "↑/↓ to choose, Enter to move, Esc to cancel"
}

func (s *MoveToProjectState) options() []string {
	options := []string{"No project"}
	for _, p := range s.Projects {
		options = append(options, p.Name)
	}
	return options
}

// SelectedProjectID returns the chosen project ID, empty to unassign
func (s *MoveToProjectState) SelectedProjectID() string {
	if s.SelectedIndex == 0 {
		return ""
	}
	return s.Projects[s.SelectedIndex-1].ID
}

func (s *MoveToProjectState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := renderOptions(s.options(), s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *MoveToProjectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		s.SelectedIndex = moveSelection(keyMsg.String(), s.SelectedIndex, len(s.options()))
	}
	return s, nil
}

// =============================================================================
// ConfirmDeleteChatState - confirm chat deletion
// =============================================================================

type ConfirmDeleteChatState struct {
	ChatID   string
	ChatName string
}

func (*ConfirmDeleteChatState) modalState() {}

func (s *ConfirmDeleteChatState) Title() string { return "Delete Chat" }

func (s *ConfirmDeleteChatState) Help() string {
	return "y/Enter to delete, Esc to cancel"
}

func (s *ConfirmDeleteChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	name := s.ChatName
	if name == "" {
		name = s.ChatID
	}
	body := fmt.Sprintf("Delete %q and its history?\nThis cannot be undone.", name)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ConfirmDeleteChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// =============================================================================
// ConfirmDeleteProjectState - confirm project deletion
// =============================================================================

type ConfirmDeleteProjectState struct {
	ProjectID   string
	ProjectName string
}

func (*ConfirmDeleteProjectState) modalState() {}

func (s *ConfirmDeleteProjectState) Title() string { return "Delete Project" }

func (s *ConfirmDeleteProjectState) Help() string {
	return "y/Enter to delete, Esc to cancel"
}

func (s *ConfirmDeleteProjectState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := fmt.Sprintf("Delete project %q?\nIts chats move to Unfiled.", s.ProjectName)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ConfirmDeleteProjectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// =============================================================================
// ExportFormatState - pick an export format
// =============================================================================

type ExportFormatState struct {
	ChatID        string
	Formats       []string
	SelectedIndex int
}

// NewExportFormatState creates the export format picker
func NewExportFormatState(chatID string, formats []string) *ExportFormatState {
	return &ExportFormatState{ChatID: chatID, Formats: formats}
}

func (*ExportFormatState) modalState() {}

func (s *ExportFormatState) Title() string { return "Export Chat" }

func (s *ExportFormatState) Help() string {
	return "↑/↓ to choose, Enter to export, Esc to cancel"
}

// SelectedFormat returns the chosen format
func (s *ExportFormatState) SelectedFormat() string {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Formats) {
		return ""
	}
	return s.Formats[s.SelectedIndex]
}

func (s *ExportFormatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := renderOptions(s.Formats, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ExportFormatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		s.SelectedIndex = moveSelection(keyMsg.String(), s.SelectedIndex, len(s.Formats))
	}
	return s, nil
}

// =============================================================================
// RatingState - rate the latest answer
// =============================================================================

// ratingReasons are offered when an answer is marked unhelpful
var ratingReasons = []string{
	"Incorrect",
	"Incomplete",
	"Wrong sources",
	"Off topic",
	"Other",
}

type RatingState struct {
	Question string
	Answer   string

	RatingValue int // 1 thumbs up, -1 thumbs down
	Reason      string
	Comments    string

	form *huh.Form
}

// NewRatingState creates the answer rating form
func NewRatingState(question, answer string) *RatingState {
	s := &RatingState{
		Question:    question,
		Answer:      answer,
		RatingValue: 1,
	}

	reasonOptions := make([]huh.Option[string], 0, len(ratingReasons)+1)
	reasonOptions = append(reasonOptions, huh.NewOption("(none)", ""))
	for _, r := range ratingReasons {
		reasonOptions = append(reasonOptions, huh.NewOption(r, r))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rating").
				Options(
					huh.NewOption("👍 Helpful", 1),
					huh.NewOption("👎 Not helpful", -1),
				).
				Value(&s.RatingValue),
			huh.NewSelect[string]().
				Title("Reason").
				Options(reasonOptions...).
				Value(&s.Reason),
			huh.NewInput().
				Title("Comments").
				CharLimit(ModalInputCharLimit).
				Value(&s.Comments),
		),
	).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	initHuhForm(s.form)
	return s
}

func (*RatingState) modalState() {}

func (s *RatingState) Title() string { return "Rate Answer" }

func (s *RatingState) Help() string {
	return "Tab to move between fields, Enter to save, Esc to cancel"
}

func (s *RatingState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *RatingState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}
