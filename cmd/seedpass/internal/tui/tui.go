// Package tui implements an interactive terminal picker for choosing a
// configured site, for use when seedpass is invoked without a site argument
// at an interactive terminal: a cursor-driven list view with j/k/enter/q
// key handling and lipgloss styling for the selected row. It is a single
// list-and-select screen since seedpass has nothing to show per site
// beyond its name.
package tui

import (
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by Pick when the user quits without selecting a
// site.
var ErrCancelled = errors.New("tui: selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("0"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Pick runs an interactive picker over sites (typically the keys of a
// config.Config's Sites map) and returns the one the user selected, or
// ErrCancelled if they quit instead.
func Pick(sites []string) (string, error) {
	if len(sites) == 0 {
		return "", errors.New("tui: no sites configured")
	}
	sorted := append([]string(nil), sites...)
	sort.Strings(sorted)

	m := model{sites: sorted}
	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("tui: running picker: %w", err)
	}
	final := out.(model)
	if !final.chosen {
		return "", ErrCancelled
	}
	return final.sites[final.cursor], nil
}

type model struct {
	sites  []string
	cursor int
	chosen bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.sites)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	s := titleStyle.Render("Select a site") + "\n\n"
	for i, site := range m.sites {
		line := site
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		s += line + "\n"
	}
	s += "\n" + helpStyle.Render("j/k=move, enter=select, q=cancel")
	return s
}
