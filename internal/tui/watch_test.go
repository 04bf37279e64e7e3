package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sleepcalc/internal/cycle"
)

func clock(t *testing.T, s string) cycle.Clock {
	t.Helper()
	c, err := cycle.ParseClock(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestModelTickFollowsClock(t *testing.T) {
	times := []cycle.Clock{clock(t, "22:00"), clock(t, "22:30")}
	calls := 0
	now := func() cycle.Clock {
		c := times[calls]
		if calls < len(times)-1 {
			calls++
		}
		return c
	}

	m := NewModel(cycle.ModeSleep, clock(t, "07:00"), now, 30*time.Second)
	if m.entries[0].Clock != "23:44" {
		t.Fatalf("first wake time = %s, want 23:44", m.entries[0].Clock)
	}

	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	m = next.(Model)
	if m.entries[0].Clock != "00:14" {
		t.Errorf("after tick first wake time = %s, want 00:14", m.entries[0].Clock)
	}
	if !strings.Contains(m.View(), "10:30 PM") {
		t.Errorf("view missing current time:\n%s", m.View())
	}
}

func TestModelToggleMode(t *testing.T) {
	now := func() cycle.Clock { return clock(t, "22:00") }
	m := NewModel(cycle.ModeWake, clock(t, "07:00"), now, time.Minute)
	if m.entries[0].Clock != "21:46" {
		t.Fatalf("first bedtime = %s, want 21:46", m.entries[0].Clock)
	}
	if !strings.Contains(m.View(), "Recommended bedtimes") {
		t.Error("view missing bedtimes heading")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.mode != cycle.ModeSleep || m.entries[0].Clock != "23:44" {
		t.Errorf("after tab mode = %s first = %s", m.mode, m.entries[0].Clock)
	}
	if !strings.Contains(m.View(), "Recommended wake times") {
		t.Error("view missing wake times heading")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(cycle.ModeSleep, 0, func() cycle.Clock { return 0 }, time.Minute)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
