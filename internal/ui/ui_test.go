package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

func snapshotWith(dates ...time.Time) state.Snapshot {
	s := state.Snapshot{
		Observer:    astro.Observer{LatDeg: 51.48, LonDeg: 0},
		LastCompute: time.Now(),
	}
	for _, d := range dates {
		s.Days = append(s.Days, &almanac.Day{Date: d})
	}
	return s
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModelViewBeforeReady(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil)
	if !strings.Contains(m.View(), "Initializing") {
		t.Errorf("pre-size view = %q", m.View())
	}
}

func TestModelView(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, DataUpdateMsg{Snapshot: snapshotWith(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)})

	out := m.View()
	for _, want := range []string{
		"ls-almanac",
		"observer 51.4800°, 0.0000°",
		"Sat 2024-06-01",
		"q: quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil)
	_, cmd := update(t, m, runeMsg('q'))
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestModelNavigation(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	requests := make(chan time.Time, 1)
	m := New(state.NewManager(state.DefaultConfig()), requests)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, DataUpdateMsg{Snapshot: snapshotWith(
		base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2),
	)})

	// No cached day matches today, so the selection lands on the last.
	if !strings.Contains(m.View(), "2024-06-03") {
		t.Fatalf("initial selection wrong:\n%s", m.View())
	}

	m, _ = update(t, m, keyMsg(tea.KeyLeft))
	if !strings.Contains(m.View(), "2024-06-02") {
		t.Errorf("left did not move the selection:\n%s", m.View())
	}

	m, _ = update(t, m, keyMsg(tea.KeyRight))
	m, _ = update(t, m, keyMsg(tea.KeyRight))
	// Right past the cached range requests the following date.
	select {
	case got := <-requests:
		want := base.AddDate(0, 0, 3)
		if !got.Equal(want) {
			t.Errorf("requested %v, want %v", got, want)
		}
	default:
		t.Error("navigating past the end did not request a new day")
	}

	// Left past the start requests the preceding date.
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, keyMsg(tea.KeyLeft))
	}
	select {
	case got := <-requests:
		want := base.AddDate(0, 0, -1)
		if !got.Equal(want) {
			t.Errorf("requested %v, want %v", got, want)
		}
	default:
		t.Error("navigating past the start did not request a new day")
	}
}

func TestModelErrorFooter(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, ErrorMsg{Error: errors.New("ephemeris offline")})

	if !strings.Contains(m.View(), "ERROR: ephemeris offline") {
		t.Errorf("footer missing the error:\n%s", m.View())
	}
}
