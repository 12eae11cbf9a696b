// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals newly computed almanac days.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a compute error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model: a date-navigable event browser.
type Model struct {
	state    *state.Manager
	requests chan<- time.Time // dates to compute, consumed by the compute loop

	width  int
	height int
	ready  bool

	dayView  DayViewModel
	snapshot state.Snapshot
	selected int // index into snapshot.Days
	lastErr  error
}

// New creates the root UI model. Dates navigated past the cached range
// are pushed onto requests; a nil channel disables extension.
func New(stateMgr *state.Manager, requests chan<- time.Time) Model {
	return Model{
		state:    stateMgr,
		requests: requests,
		dayView:  NewDayViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			if m.selected > 0 {
				m.selected--
				m.syncDayView()
			} else {
				m.requestDay(m.prevDate())
			}
		case "right", "l":
			if m.selected < len(m.snapshot.Days)-1 {
				m.selected++
				m.syncDayView()
			} else {
				m.requestDay(m.nextDate())
			}
		case "t":
			m.selected = m.todayIndex()
			m.syncDayView()

		default:
			var cmd tea.Cmd
			m.dayView, cmd = m.dayView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Header is 4 lines, footer 2.
		m.dayView = m.dayView.SetSize(msg.Width, msg.Height-6)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		m.clampSelection()
		m.syncDayView()

	case DataUpdateMsg:
		hadData := len(m.snapshot.Days) > 0
		m.snapshot = msg.Snapshot
		if !hadData {
			m.selected = m.todayIndex()
		}
		m.clampSelection()
		m.syncDayView()

	case ErrorMsg:
		m.lastErr = msg.Error

	default:
		var cmd tea.Cmd
		m.dayView, cmd = m.dayView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.snapshot.Days) {
		m.selected = len(m.snapshot.Days) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) syncDayView() {
	if m.selected >= 0 && m.selected < len(m.snapshot.Days) {
		m.dayView = m.dayView.SetDay(m.snapshot.Days[m.selected])
	}
}

// todayIndex returns the index of today's day in the snapshot, or the
// last index when today is not cached.
func (m Model) todayIndex() int {
	today := time.Now().UTC().Format("2006-01-02")
	for i, d := range m.snapshot.Days {
		if d.Date.Format("2006-01-02") == today {
			return i
		}
	}
	return len(m.snapshot.Days) - 1
}

func (m Model) prevDate() time.Time {
	if len(m.snapshot.Days) == 0 {
		return time.Time{}
	}
	return m.snapshot.Days[0].Date.AddDate(0, 0, -1)
}

func (m Model) nextDate() time.Time {
	if len(m.snapshot.Days) == 0 {
		return time.Time{}
	}
	return m.snapshot.Days[len(m.snapshot.Days)-1].Date.AddDate(0, 0, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.dayView.View() + "\n" + m.renderFooter()
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render("ls-almanac"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  rise, set & sky events · v%s", version.Version)))
	b.WriteString("\n  ")

	obs := m.snapshot.Observer
	b.WriteString(mutedStyle.Render(fmt.Sprintf("observer %.4f°, %.4f°", obs.LatDeg, obs.LonDeg)))
	if m.selected >= 0 && m.selected < len(m.snapshot.Days) {
		d := m.snapshot.Days[m.selected]
		b.WriteString(accentStyle.Render("   " + d.Date.Format("Mon 2006-01-02")))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastCompute.IsZero():
		status = mutedStyle.Render(fmt.Sprintf("computed in %s",
			m.snapshot.ComputeDuration.Round(time.Millisecond)))
	default:
		status = mutedStyle.Render("computing...")
	}

	help := mutedStyle.Render("←/→: day | t: today | ↑↓: scroll | q: quit")
	return "  " + status + "  " + mutedStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// requestDay hands a date to the compute loop without blocking the UI.
func (m Model) requestDay(date time.Time) {
	if m.requests == nil || date.IsZero() {
		return
	}
	select {
	case m.requests <- date:
	default:
	}
}

// SendDataUpdate creates a command that delivers a fresh snapshot.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that delivers a compute error.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
