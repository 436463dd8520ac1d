package picker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwkit/bcmfw/internal/catalog"
	"github.com/fwkit/bcmfw/internal/ui"
)

// ErrCancelled is returned when the user quits without choosing.
var ErrCancelled = errors.New("selection cancelled")

// Option is one selectable row.
type Option struct {
	Label  string
	Detail string
}

// FilterValue implements list.Item
func (o Option) FilterValue() string { return o.Label + " " + o.Detail }

// pickerKeyMap defines key bindings for the picker
type pickerKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Enter, k.Quit}}
}

// optionDelegate renders one option per line with a selection arrow
type optionDelegate struct{}

func (d optionDelegate) Height() int                             { return 2 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(Option)
	if !ok {
		return
	}

	label := "  " + opt.Label
	if index == m.Index() {
		label = ui.MatchStyle.Bold(true).Render("→ " + opt.Label)
	}

	detail := ""
	if opt.Detail != "" {
		detail = "\n" + ui.MutedStyle.Render("    "+opt.Detail)
	}

	fmt.Fprint(w, label+detail)
}

// model is the bubbletea model for a one-shot selection list
type model struct {
	list      list.Model
	help      help.Model
	keys      pickerKeyMap
	choice    int
	cancelled bool
}

func newModel(title string, options []Option) model {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = opt
	}

	l := list.New(items, optionDelegate{}, ui.MinTerminalWidth, len(options)*2+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = ui.SectionTitleStyle

	keys := pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}

	return model{
		list:   l,
		help:   help.New(),
		keys:   keys,
		choice: -1,
	}
}

// Init implements tea.Model
func (m model) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.choice = m.list.Index()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > ui.MaxContentWidth {
			width = ui.MaxContentWidth
		}
		m.list.SetWidth(width)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.list.View(),
		"",
		"  "+m.help.View(m.keys),
		"",
	)
}

// Choose runs an interactive selection over options and returns the
// chosen index. One option short-circuits without showing the TUI.
func Choose(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options to choose from")
	}
	if len(options) == 1 {
		return 0, nil
	}

	final, err := tea.NewProgram(newModel(title, options)).Run()
	if err != nil {
		return -1, fmt.Errorf("selection failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.cancelled || m.choice < 0 {
		return -1, ErrCancelled
	}
	return m.choice, nil
}

// ChooseChip asks the user to pick one of several identified chips.
func ChooseChip(profiles []*catalog.ChipProfile) (*catalog.ChipProfile, error) {
	options := make([]Option, len(profiles))
	for i, p := range profiles {
		detail := fmt.Sprintf("%d known firmware version(s)", len(p.Candidates))
		if rec, ok := p.Recommended(); ok {
			detail += ", recommended " + rec.VersionID
		}
		options[i] = Option{Label: chipLabel(p), Detail: detail}
	}

	idx, err := Choose("Multiple chips identified", options)
	if err != nil {
		return nil, err
	}
	return profiles[idx], nil
}

// ChooseCandidate asks the user to pick a firmware version for a chip.
// Candidates are listed best-ranked first.
func ChooseCandidate(profile *catalog.ChipProfile) (*catalog.FirmwareCandidate, error) {
	ranked := profile.RankedCandidates()
	if len(ranked) == 0 {
		return nil, fmt.Errorf("no known firmware versions for %s", profile.ChipID)
	}

	options := make([]Option, len(ranked))
	for i, c := range ranked {
		detail := c.Note
		if i == 0 {
			if detail != "" {
				detail = "recommended, " + detail
			} else {
				detail = "recommended"
			}
		}
		options[i] = Option{Label: c.VersionID, Detail: detail}
	}

	idx, err := Choose("Firmware version for "+chipLabel(profile), options)
	if err != nil {
		return nil, err
	}
	return &ranked[idx], nil
}

func chipLabel(p *catalog.ChipProfile) string {
	if p.DisplayName != "" && !strings.EqualFold(p.DisplayName, p.ChipID) {
		return fmt.Sprintf("%s (%s)", p.ChipID, p.DisplayName)
	}
	return p.ChipID
}
