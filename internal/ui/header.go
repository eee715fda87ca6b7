package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width       int
	chatName    string
	projectName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChatName sets the current chat name to display
func (h *Header) SetChatName(name string) {
	h.chatName = name
}

// SetProjectName sets the project of the current chat to display
func (h *Header) SetProjectName(name string) {
	h.projectName = name
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " cited"
	var rightText string
	if h.chatName != "" {
		rightText = h.chatName
		if h.projectName != "" {
			rightText += " (" + h.projectName + ")"
		}
		rightText += " "
	}

	// Calculate padding
	paddingLen := h.width - len(titleText) - len(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, h.projectName)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a gradient background fading from
// the primary color to the terminal background. The project portion of the
// text is muted so the chat name stands out.
func (h *Header) renderGradient(content string, projectName string) string {
	if len(content) == 0 {
		return ""
	}

	startR, startG, startB := parseHexColor("#7C3AED")
	endR, endG, endB := parseHexColor("#1F2937")

	textColor := ColorText
	mutedColor := ColorTextMuted

	// Find where the project portion starts (if present)
	projectStart := -1
	if projectName != "" {
		marker := "(" + projectName + ")"
		projectStart = strings.Index(content, marker)
	}

	runes := []rune(content)
	n := len(runes)
	var b strings.Builder
	for i, r := range runes {
		// Interpolate background color across the full width
		t := float64(i) / float64(max(n-1, 1))
		bg := fmt.Sprintf("#%02x%02x%02x",
			startR+int(t*float64(endR-startR)),
			startG+int(t*float64(endG-startG)),
			startB+int(t*float64(endB-startB)),
		)

		fg := textColor
		if projectStart >= 0 && i >= projectStart {
			fg = mutedColor
		}

		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(lipgloss.Color(bg))
		b.WriteString(style.Render(string(r)))
	}

	return b.String()
}
