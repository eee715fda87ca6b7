package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/citedapp/cited/internal/citation"
	"github.com/citedapp/cited/internal/document"
	"github.com/citedapp/cited/internal/logger"
	"github.com/citedapp/cited/internal/transcript"
)

// StopwatchTickMsg is sent to update the stopwatch display
type StopwatchTickMsg time.Time

// thinkingVerbs are playful status messages that cycle while waiting for an answer
var thinkingVerbs = []string{
	"Thinking",
	"Reasoning",
	"Pondering",
	"Contemplating",
	"Retrieving",
	"Searching",
	"Cross-referencing",
	"Reading",
	"Skimming",
	"Digging",
	"Indexing",
	"Analyzing",
	"Synthesizing",
	"Formulating",
	"Citing",
	"Footnoting",
	"Percolating",
	"Brewing",
	"Marinating",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// Chat represents the right panel with the conversation view
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	conversation  *transcript.Transcript
	chatName      string
	hasChat       bool
	waiting       bool      // Waiting for an answer
	waitStartTime time.Time // When waiting started (for stopwatch)
	waitingVerb   string    // Random verb to display while waiting

	// Citation anchors of the latest answer, in reading order
	anchors      []document.Anchor
	activeAnchor int // Index into anchors, -1 when none is active
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask a question..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:     vp,
		input:        ti,
		activeAnchor: -1,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// Chat panel height (excluding input area which is separate)
	chatPanelHeight := height - InputTotalHeight

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetTranscript sets the conversation to display. Citation anchors are
// rebuilt from the latest answer and the active anchor is cleared.
func (c *Chat) SetTranscript(name string, t *transcript.Transcript) {
	c.chatName = name
	c.conversation = t
	c.hasChat = true
	c.activeAnchor = -1
	c.updateContent()
}

// ClearChat clears the current conversation
func (c *Chat) ClearChat() {
	c.chatName = ""
	c.conversation = nil
	c.hasChat = false
	c.waiting = false
	c.anchors = nil
	c.activeAnchor = -1
	c.updateContent()
}

// Refresh re-renders the conversation after the transcript changed
func (c *Chat) Refresh() {
	c.updateContent()
}

// HasChat reports whether a conversation is loaded
func (c *Chat) HasChat() bool {
	return c.hasChat
}

// ChatName returns the displayed chat name
func (c *Chat) ChatName() string {
	return c.chatName
}

// GetInput returns the current input text
func (c *Chat) GetInput() string {
	val := strings.TrimSpace(c.input.Value())
	logger.Log("Chat.GetInput: value=%q, len=%d", val, len(val))
	return val
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// SetWaiting sets the waiting state for the displayed conversation
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomThinkingVerb()
	}
	c.updateContent()
}

// SetWaitingWithStart sets the waiting state with a specific start time,
// used when switching back to a chat that is still waiting.
func (c *Chat) SetWaitingWithStart(waiting bool, startTime time.Time) {
	c.waiting = waiting
	c.waitStartTime = startTime
	if waiting {
		c.waitingVerb = randomThinkingVerb()
	}
	c.updateContent()
}

// IsWaiting returns whether we're waiting for an answer
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// NextAnchor activates the next citation anchor of the latest answer,
// wrapping around in reading order.
func (c *Chat) NextAnchor() {
	if len(c.anchors) == 0 {
		return
	}
	c.activeAnchor = (c.activeAnchor + 1) % len(c.anchors)
	c.updateContent()
}

// PrevAnchor activates the previous citation anchor, wrapping around
func (c *Chat) PrevAnchor() {
	if len(c.anchors) == 0 {
		return
	}
	if c.activeAnchor <= 0 {
		c.activeAnchor = len(c.anchors) - 1
	} else {
		c.activeAnchor--
	}
	c.updateContent()
}

// ClearAnchor deactivates the active citation anchor
func (c *Chat) ClearAnchor() {
	c.activeAnchor = -1
	c.updateContent()
}

// HasActiveAnchor reports whether a citation anchor is active
func (c *Chat) HasActiveAnchor() bool {
	return c.activeAnchor >= 0 && c.activeAnchor < len(c.anchors)
}

// ActiveCitation returns the citation and highlighted passages behind the
// active anchor of the latest answer.
func (c *Chat) ActiveCitation() (transcript.Citation, []transcript.Passage, bool) {
	if !c.HasActiveAnchor() || c.conversation == nil {
		return transcript.Citation{}, nil, false
	}
	msg, ok := c.conversation.LastAnswer()
	if !ok {
		return transcript.Citation{}, nil, false
	}
	key := c.anchors[c.activeAnchor].Key
	for _, cite := range msg.Citations {
		if cite.Key == key {
			return cite, msg.Passages[key], true
		}
	}
	return transcript.Citation{}, nil, false
}

// LastAnswerText returns the text of the latest answer, for copying
func (c *Chat) LastAnswerText() (string, bool) {
	if c.conversation == nil {
		return "", false
	}
	msg, ok := c.conversation.LastAnswer()
	if !ok {
		return "", false
	}
	return msg.Text, true
}

// renderNoChatMessage renders the placeholder when no chat is selected
func (c *Chat) renderNoChatMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No chat selected"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("To get started:"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a new chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("p"))
	sb.WriteString(msgStyle.Render(" to create a project"))
	return sb.String()
}

// renderSources renders the source list under an answer
func renderSources(citations []transcript.Citation) string {
	if len(citations) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(ChatSourceStyle.Render("Sources:"))
	for _, cite := range citations {
		sb.WriteString("\n")
		line := fmt.Sprintf("  [%d] %s", cite.DisplayIndex, cite.SourceID)
		if cite.URL != "" {
			line += " <" + cite.URL + ">"
		}
		sb.WriteString(ChatSourceStyle.Render(line))
	}
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if !c.hasChat || c.conversation == nil {
		sb.WriteString(c.renderNoChatMessage())
	} else if c.conversation.Len() == 0 && !c.waiting {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Ask a question to get started..."))
	} else {
		lastAnswer, hasAnswer := c.conversation.LastAnswer()
		c.anchors = nil

		for i, msg := range c.conversation.Messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}

			if msg.Role == transcript.RoleUser {
				sb.WriteString(ChatUserStyle.Render("You:"))
				sb.WriteString("\n")
				sb.WriteString(ChatMessageStyle.Render(wordwrap.String(strings.TrimSpace(msg.Text), wrapWidth)))
				continue
			}

			sb.WriteString(ChatAssistantStyle.Render("Assistant:"))
			sb.WriteString("\n")

			doc := citation.Link(msg.Text, msg.Citations)
			renderer := document.NewRenderer(wrapWidth)
			// Only the latest answer carries the active anchor
			isLatest := hasAnswer && msg.ID == lastAnswer.ID
			if isLatest {
				renderer.ActiveAnchor = c.activeAnchor
			}
			result := renderer.Render(doc)
			sb.WriteString(result.Text)

			if isLatest {
				c.anchors = result.Anchors
			}

			if sources := renderSources(msg.Citations); sources != "" {
				sb.WriteString("\n\n")
				sb.WriteString(sources)
			}
		}

		if c.activeAnchor >= len(c.anchors) {
			c.activeAnchor = -1
		}

		// Show waiting indicator with stopwatch
		if c.waiting {
			if c.conversation.Len() > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.waitStartTime)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			sb.WriteString(ChatAssistantStyle.Render("Assistant:"))
			sb.WriteString("\n")
			sb.WriteString(StatusLoadingStyle.Render(c.waitingVerb + "... "))
			sb.WriteString(stopwatchStyle.Render(formatElapsed(elapsed)))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case StopwatchTickMsg:
		if c.waiting {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	}

	if c.focused && c.hasChat {
		// Check if this is a scroll key before sending to input
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			key := keyMsg.String()
			switch key {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end",
				"page up", "page down", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Don't pass other key events to viewport when input is focused.
		// This prevents spacebar/arrows from scrolling while typing.
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	// Update viewport for scrolling (non-key events, or when not focused)
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	var viewportContent string
	if !c.hasChat {
		viewportContent = c.renderNoChatMessage()
	} else {
		viewportContent = c.viewport.View()
	}

	if !c.hasChat {
		// No chat: just show the panel with placeholder
		return panelStyle.Width(c.width).Height(c.height).Render(viewportContent)
	}

	// With chat: history panel + input area below it
	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(viewportContent)

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
