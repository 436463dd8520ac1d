package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the styled box printed before a command runs, showing the
// operation name, the invoked command, and its effective parameters.
type Header struct {
	Title   string
	Command string
	Params  map[string]string
	Width   int
}

// NewHeader creates a command header
func NewHeader(title, command string, params map[string]string) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// Render returns the styled header box as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		SectionTitleStyle.Render("   " + strings.ToUpper(h.Title)),
		MutedStyle.Render("   " + h.Command),
	}

	if len(h.Params) > 0 {
		lines = append(lines, "")
		keys := make([]string, 0, len(h.Params))
		for key := range h.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			lines = append(lines, KeyStyle.Render(fmt.Sprintf("   %s:", key))+" "+ValueStyle.Render(h.Params[key]))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// PrintCommandHeader prints the styled header for a command invocation
func PrintCommandHeader(title, command string, params map[string]string) {
	fmt.Println(NewHeader(title, command, params).Render())
	fmt.Println()
}
