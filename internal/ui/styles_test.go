package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestDisableColors(t *testing.T) {
	previous := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(previous)

	DisableColors()

	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Errorf("color profile = %v after DisableColors(), want Ascii", got)
	}
	if got := MatchStyle.Render("ok"); got != "ok" {
		t.Errorf("MatchStyle.Render() = %q with colors disabled, want plain text", got)
	}
}

func TestGetTerminalWidth_FallsBackWithoutTerminal(t *testing.T) {
	// Test processes have no TTY on stdout, so the minimum applies.
	if got := GetTerminalWidth(); got != MinTerminalWidth {
		t.Errorf("GetTerminalWidth() = %d, want %d", got, MinTerminalWidth)
	}
}
