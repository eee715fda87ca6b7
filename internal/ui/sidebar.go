package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/citedapp/cited/internal/keys"
	"github.com/citedapp/cited/internal/registry"
)

// sidebarSpinnerFrames animates chats that are waiting on an answer.
// The dots ease in and out of the burst shapes.
var sidebarSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// sidebarSpinnerHoldTimes controls how many ticks each frame is held
var sidebarSpinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// SidebarTick returns a command that sends a tick message after a delay
func SidebarTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// sidebarItemKind distinguishes between project headers and chats in the sidebar.
type sidebarItemKind int

const (
	itemKindProject sidebarItemKind = iota // A project header (selectable)
	itemKindChat                           // A chat within a bucket
)

// sidebarItem represents a selectable item in the sidebar.
type sidebarItem struct {
	Kind    sidebarItemKind
	Chat    registry.ChatSummary // Only valid when Kind == itemKindChat
	Project registry.Project     // Set for project headers and their chats
}

// Sidebar represents the left panel with the chat list grouped into
// favorites, projects, and unfiled buckets.
type Sidebar struct {
	view         registry.View
	items        []sidebarItem // flat list of all selectable items
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	awaiting     map[string]bool // chat IDs waiting on an answer
	spinnerFrame int             // Current spinner animation frame
	spinnerTick  int             // Tick counter for frame hold timing
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{
		awaiting: make(map[string]bool),
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetView replaces the chat list. Selection is preserved by chat ID
// where possible so a background refresh doesn't move the cursor.
func (s *Sidebar) SetView(view registry.View) {
	var selectedID string
	if c := s.SelectedChat(); c != nil {
		selectedID = c.ID
	}

	s.view = view
	s.rebuildItems()

	if selectedID != "" {
		s.SelectChat(selectedID)
	}
	if s.selectedIdx >= len(s.items) {
		s.selectedIdx = len(s.items) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// View returns the current chat list
func (s *Sidebar) ViewData() registry.View {
	return s.view
}

// rebuildItems flattens the bucketed view into the selectable item list.
// Favorites come first, then each project with its chats, then unfiled.
func (s *Sidebar) rebuildItems() {
	s.items = s.items[:0]

	for _, chat := range s.view.Favorites {
		s.items = append(s.items, sidebarItem{Kind: itemKindChat, Chat: chat})
	}
	for _, group := range s.view.Projects {
		s.items = append(s.items, sidebarItem{Kind: itemKindProject, Project: group.Project})
		for _, chat := range group.Chats {
			s.items = append(s.items, sidebarItem{Kind: itemKindChat, Chat: chat, Project: group.Project})
		}
	}
	for _, chat := range s.view.Unfiled {
		s.items = append(s.items, sidebarItem{Kind: itemKindChat, Chat: chat})
	}
}

// SelectedChat returns the currently selected chat, or nil when a project
// header or nothing is selected.
func (s *Sidebar) SelectedChat() *registry.ChatSummary {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return nil
	}
	item := s.items[s.selectedIdx]
	if item.Kind != itemKindChat {
		return nil
	}
	chat := item.Chat
	return &chat
}

// SelectedProject returns the project context of the selection: the selected
// project header, or the project the selected chat belongs to. Nil for
// favorites and unfiled chats.
func (s *Sidebar) SelectedProject() *registry.Project {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return nil
	}
	item := s.items[s.selectedIdx]
	if item.Project.ID == "" {
		return nil
	}
	project := item.Project
	return &project
}

// IsProjectSelected reports whether a project header is selected
func (s *Sidebar) IsProjectSelected() bool {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return false
	}
	return s.items[s.selectedIdx].Kind == itemKindProject
}

// SelectChat moves the selection to the chat with the given ID.
// Favorites duplicate chats, so the first matching item wins.
func (s *Sidebar) SelectChat(id string) {
	for i, item := range s.items {
		if item.Kind == itemKindChat && item.Chat.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// ClearSelection moves the selection to the top of the list
func (s *Sidebar) ClearSelection() {
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// SetAwaiting marks a chat as waiting on an answer, driving the spinner
func (s *Sidebar) SetAwaiting(chatID string, waiting bool) {
	if waiting {
		s.awaiting[chatID] = true
	} else {
		delete(s.awaiting, chatID)
	}
}

// IsAwaiting reports whether any chat is waiting on an answer
func (s *Sidebar) IsAwaiting() bool {
	return len(s.awaiting) > 0
}

// IsChatAwaiting reports whether the given chat is waiting on an answer
func (s *Sidebar) IsChatAwaiting(chatID string) bool {
	return s.awaiting[chatID]
}

// Update handles sidebar messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SidebarTickMsg:
		if s.IsAwaiting() {
			// Advance the spinner with easing (some frames hold longer)
			s.spinnerTick++
			holdTime := sidebarSpinnerHoldTimes[s.spinnerFrame%len(sidebarSpinnerHoldTimes)]
			if s.spinnerTick >= holdTime {
				s.spinnerTick = 0
				s.spinnerFrame = (s.spinnerFrame + 1) % len(sidebarSpinnerFrames)
			}
			return s, SidebarTick()
		}
		return s, nil

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case keys.Down, "j":
			if s.selectedIdx < len(s.items)-1 {
				s.selectedIdx++
			}
		}
	}

	return s, nil
}

// renderChatName renders a single chat line with its status prefix
func (s *Sidebar) renderChatName(chat registry.ChatSummary, innerWidth int) string {
	prefix := "  "
	if s.awaiting[chat.ID] {
		prefix = sidebarSpinnerFrames[s.spinnerFrame] + " "
	} else if chat.Favorite {
		prefix = SidebarStarStyle.Render("★") + " "
	}

	name := chat.Name
	if name == "" {
		name = chat.ID
	}

	// Leave room for prefix, selection marker, and item padding
	maxWidth := innerWidth - 6
	if maxWidth > 0 {
		name = runewidth.Truncate(name, maxWidth, "…")
	}

	return prefix + name
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	var content string

	if len(s.items) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No chats. Press n to start one.")
	} else {
		// Build actual rendered lines so wrapped items scroll correctly
		var allLines []string
		selectedStartLine := 0

		itemIdx := 0

		renderChat := func(chat registry.ChatSummary) {
			isSelected := itemIdx == s.selectedIdx
			displayName := s.renderChatName(chat, innerWidth)

			itemStyle := SidebarItemStyle.Width(innerWidth)
			if isSelected {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
				displayName = "> " + strings.TrimPrefix(displayName, "  ")
				selectedStartLine = len(allLines)
			}
			rendered := itemStyle.Render(displayName)
			allLines = append(allLines, strings.Split(rendered, "\n")...)
			itemIdx++
		}

		bucketHeader := func(label string) {
			if len(allLines) > 0 {
				allLines = append(allLines, "")
			}
			allLines = append(allLines, SidebarBucketStyle.Render(label))
		}

		if len(s.view.Favorites) > 0 {
			bucketHeader("★ Favorites")
			for _, chat := range s.view.Favorites {
				renderChat(chat)
			}
		}

		for _, group := range s.view.Projects {
			if len(allLines) > 0 {
				allLines = append(allLines, "")
			}

			// Project header (selectable)
			isSelected := itemIdx == s.selectedIdx
			name := runewidth.Truncate(group.Project.Name, max(innerWidth-4, 1), "…")
			if isSelected {
				headerStyle := SidebarSelectedStyle.Width(innerWidth).Bold(true)
				selectedStartLine = len(allLines)
				rendered := headerStyle.Render("> " + name)
				allLines = append(allLines, strings.Split(rendered, "\n")...)
			} else {
				headerStyle := lipgloss.NewStyle().
					Foreground(ColorTextMuted).
					Bold(true).
					Padding(0, 1)
				allLines = append(allLines, headerStyle.Render(name))
			}
			itemIdx++

			for _, chat := range group.Chats {
				renderChat(chat)
			}
		}

		if len(s.view.Unfiled) > 0 {
			bucketHeader("Unfiled")
			for _, chat := range s.view.Unfiled {
				renderChat(chat)
			}
		}

		// Adjust scroll to keep the selected item visible
		if selectedStartLine < s.scrollOffset {
			s.scrollOffset = selectedStartLine
		} else if selectedStartLine >= s.scrollOffset+innerHeight {
			s.scrollOffset = selectedStartLine - innerHeight + 1
		}
		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}
		maxScroll := len(allLines) - innerHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if s.scrollOffset > maxScroll {
			s.scrollOffset = maxScroll
		}

		if s.scrollOffset > 0 && s.scrollOffset < len(allLines) {
			allLines = allLines[s.scrollOffset:]
		}
		if len(allLines) > innerHeight {
			allLines = allLines[:innerHeight]
		}
		content = strings.Join(allLines, "\n")
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}
