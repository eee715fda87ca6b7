package ui

import (
	"strings"
	"testing"
)

func TestHeader_View(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)

	view := header.View()
	if !strings.Contains(view, "cited") {
		t.Error("Header should contain the app name")
	}

	header.SetChatName("quarterly report")
	view = header.View()
	if !strings.Contains(view, "quarterly report") {
		t.Error("Header should contain the chat name")
	}

	header.SetProjectName("research")
	view = header.View()
	if !strings.Contains(view, "(research)") {
		t.Error("Header should contain the project name in parens")
	}
}

func TestHeader_NarrowWidth(t *testing.T) {
	header := NewHeader()
	header.SetWidth(5)
	header.SetChatName("a very long chat name that cannot fit")

	// Must not panic on negative padding
	_ = header.View()
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#7C3AED")
	if r != 0x7C || g != 0x3A || b != 0xED {
		t.Errorf("parseHexColor = %d,%d,%d", r, g, b)
	}

	r, g, b = parseHexColor("bogus")
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Invalid input should yield zeros, got %d,%d,%d", r, g, b)
	}
}
