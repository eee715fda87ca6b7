package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/citedapp/cited/internal/api"
	"github.com/citedapp/cited/internal/highlight"
	"github.com/citedapp/cited/internal/transcript"
)

// DocView is the full-panel overlay that shows a cited source document
// with its supporting passages highlighted.
type DocView struct {
	viewport viewport.Model
	width    int
	height   int
	visible  bool
	title    string
	url      string
}

// NewDocView creates a new document overlay
func NewDocView() *DocView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &DocView{viewport: vp}
}

// SetSize sets the overlay dimensions
func (d *DocView) SetSize(width, height int) {
	d.width = width
	d.height = height
	ctx := GetViewContext()
	d.viewport.SetWidth(ctx.InnerWidth(width))
	// Reserve one line for the title bar
	h := ctx.InnerHeight(height) - 1
	if h < 1 {
		h = 1
	}
	d.viewport.SetHeight(h)
}

// IsVisible reports whether the overlay is showing
func (d *DocView) IsVisible() bool {
	return d.visible
}

// Show displays a fetched document with its highlight spans applied
func (d *DocView) Show(doc *api.DocumentResponse, url string) {
	d.visible = true
	d.title = doc.Filename
	d.url = url

	spans := make([]highlight.Span, 0, len(doc.Highlights))
	for _, h := range doc.Highlights {
		spans = append(spans, highlight.Span{Start: h.Start, End: h.End})
	}
	segments := highlight.Apply(doc.Content, spans)

	var sb strings.Builder
	for _, seg := range segments {
		if seg.Highlighted {
			sb.WriteString(DocHighlightStyle.Render(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}

	wrapWidth := d.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}
	d.viewport.SetContent(wordwrap.String(sb.String(), wrapWidth))
	d.viewport.GotoTop()
}

// ShowExcerpts displays only the cited passages, used when the full
// document could not be fetched.
func (d *DocView) ShowExcerpts(sourceID string, passages []transcript.Passage) {
	d.visible = true
	d.title = sourceID
	d.url = ""

	wrapWidth := d.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Excerpt)
	}
	segments := highlight.Excerpts(texts)

	var sb strings.Builder
	sb.WriteString(DocExcerptStyle.Render("Document unavailable. Cited passages:"))
	sb.WriteString("\n")
	for _, seg := range segments {
		sb.WriteString("\n")
		sb.WriteString(wordwrap.String(DocHighlightStyle.Render(seg.Text), wrapWidth))
		sb.WriteString("\n")
	}
	if len(segments) == 0 {
		sb.WriteString("\n")
		sb.WriteString(DocExcerptStyle.Render("No passages recorded for this source."))
	}

	d.viewport.SetContent(sb.String())
	d.viewport.GotoTop()
}

// Hide closes the overlay
func (d *DocView) Hide() {
	d.visible = false
	d.title = ""
	d.url = ""
}

// Title returns the displayed source name
func (d *DocView) Title() string {
	return d.title
}

// Update handles scrolling while the overlay is open
func (d *DocView) Update(msg tea.Msg) (*DocView, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	// The viewport's default keymap covers j/k, arrows, and paging
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the overlay panel
func (d *DocView) View() string {
	titleText := d.title
	if d.url != "" {
		titleText += "  " + ChatSourceStyle.Render("<"+d.url+">")
	}
	titleBar := DocTitleStyle.Render(titleText)

	content := lipgloss.JoinVertical(lipgloss.Left, titleBar, d.viewport.View())

	return PanelFocusedStyle.Width(d.width).Height(d.height).Render(content)
}
