package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/citedapp/cited/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update footer context for conditional bindings
	m.updateFooterContext()

	header := m.header.View()
	footer := m.footer.View()

	sidebarView := m.sidebar.View()

	// The document overlay replaces the chat panel while open
	var rightView string
	if m.docView.IsVisible() {
		rightView = m.docView.View()
	} else {
		rightView = m.chat.View()
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarView,
		rightView,
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	hasChat := m.sidebar.SelectedChat() != nil || m.activeChatID != ""
	sidebarFocused := m.focus == FocusSidebar
	waiting := m.activeChatID != "" && m.chat.IsWaiting()
	m.footer.SetContext(hasChat, sidebarFocused, waiting, m.docView.IsVisible())

	m.header.SetChatName(m.activeChatName())
	if chat, ok := m.view.Lookup(m.activeChatID); ok {
		if project, ok := m.view.ProjectByID(chat.ProjectID); ok {
			m.header.SetProjectName(project.Name)
		} else {
			m.header.SetProjectName("")
		}
	} else {
		m.header.SetProjectName("")
	}
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
	m.docView.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}
