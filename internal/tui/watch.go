// Package tui is a live terminal view that recalculates on a timer, so the
// wake times follow the clock while you get ready for bed.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sleepcalc/internal/cycle"
	"sleepcalc/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#E0571B")).
			Padding(0, 1).
			MarginBottom(1)

	recommendedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E0571B")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(1, 2)
)

type tickMsg time.Time

// Model is the bubbletea model behind `sleepcalc watch`.
type Model struct {
	mode    cycle.Mode
	wake    cycle.Clock
	now     func() cycle.Clock
	refresh time.Duration

	at      cycle.Clock
	entries []cycle.Entry
	err     error
}

// NewModel starts in mode. now supplies the current clock (real or demo) on
// every tick; wake is the wake time used in cycle.ModeWake.
func NewModel(mode cycle.Mode, wake cycle.Clock, now func() cycle.Clock, refresh time.Duration) Model {
	m := Model{mode: mode, wake: wake, now: now, refresh: refresh}
	return m.recalc()
}

func (m Model) recalc() Model {
	m.at = m.now()
	in := m.at
	if m.mode == cycle.ModeWake {
		in = m.wake
	}
	m.entries, m.err = cycle.Calculate(m.mode, in)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "m":
			if m.mode == cycle.ModeWake {
				m.mode = cycle.ModeSleep
			} else {
				m.mode = cycle.ModeWake
			}
			return m.recalc(), nil
		}
	case tickMsg:
		return m.recalc(), m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.mode.Heading()))
	b.WriteString("\n")

	if m.mode == cycle.ModeSleep {
		fmt.Fprintf(&b, "It is now %s\n\n", m.at.Format12())
	} else {
		fmt.Fprintf(&b, "Waking up at %s\n\n", m.wake.Format12())
	}

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	for _, e := range m.entries {
		t := dimStyle.Render(fmt.Sprintf("%8s", e.Display))
		if e.Recommended {
			t = recommendedStyle.Render(fmt.Sprintf("%8s", e.Display))
		}
		fmt.Fprintf(&b, "%-22s %s\n", render.Label(e), t)
	}

	help := dimStyle.Render(fmt.Sprintf("tab: switch mode • q: quit • refreshes every %s", m.refresh))
	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n" + help + "\n"
}

// Run blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch view: %w", err)
	}
	return nil
}
