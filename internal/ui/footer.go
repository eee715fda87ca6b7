package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType identifies the severity of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient status message shown in the footer
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg struct{}

// FlashTick returns a command that ticks while a flash message is showing
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return FlashTickMsg{}
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	bindings       []KeyBinding
	hasChat        bool // Whether a chat is selected
	sidebarFocused bool // Whether sidebar has focus
	waiting        bool // Whether the active chat is waiting on an answer
	docViewMode    bool // Whether showing the document overlay
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "n", Desc: "new chat"},
			{Key: "p", Desc: "new project"},
			{Key: "f", Desc: "favorite"},
			{Key: "r", Desc: "rename"},
			{Key: "m", Desc: "move"},
			{Key: "e", Desc: "export"},
			{Key: "d", Desc: "delete"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasChat, sidebarFocused, waiting, docViewMode bool) {
	f.hasChat = hasChat
	f.sidebarFocused = sidebarFocused
	f.waiting = waiting
	f.docViewMode = docViewMode
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a transient message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a transient message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether an unexpired flash message is showing.
// Expired messages are cleared as a side effect.
func (f *Footer) HasFlash() bool {
	if f.flashMessage == nil {
		return false
	}
	if f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return false
	}
	return true
}

func flashStyle(t FlashType) lipgloss.Style {
	switch t {
	case FlashSuccess:
		return FlashSuccessStyle
	case FlashWarning:
		return FlashWarningStyle
	case FlashError:
		return FlashErrorStyle
	default:
		return FlashInfoStyle
	}
}

// View renders the footer
func (f *Footer) View() string {
	// Flash messages take over the whole footer while visible
	if f.HasFlash() {
		return flashStyle(f.flashMessage.Type).Width(f.width).Render(f.flashMessage.Text)
	}

	var parts []string

	appendBindings := func(bindings []KeyBinding) {
		for _, b := range bindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	switch {
	case f.docViewMode:
		appendBindings([]KeyBinding{
			{Key: "esc/q", Desc: "close"},
			{Key: "↑/↓/j/k", Desc: "scroll"},
			{Key: "pgup/dn", Desc: "page"},
		})

	case !f.sidebarFocused && f.waiting:
		appendBindings([]KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		})

	case !f.sidebarFocused && f.hasChat:
		appendBindings([]KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+n/p", Desc: "citations"},
			{Key: "ctrl+o", Desc: "open source"},
			{Key: "ctrl+y", Desc: "copy answer"},
			{Key: "ctrl+g", Desc: "rate"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		})

	default:
		for _, b := range f.bindings {
			// Can't switch to chat without a chat selected
			if b.Key == "tab" && !f.hasChat {
				continue
			}
			// Chat-specific actions need a selected chat
			if (b.Key == "f" || b.Key == "r" || b.Key == "m" || b.Key == "e") && !f.hasChat {
				continue
			}
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
