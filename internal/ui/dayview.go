package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

// DayViewModel renders one computed day as a scrollable event table.
type DayViewModel struct {
	day    *almanac.Day
	width  int
	height int
	scroll int
}

// NewDayViewModel creates an empty day view.
func NewDayViewModel() DayViewModel {
	return DayViewModel{}
}

// SetSize updates the view dimensions.
func (v DayViewModel) SetSize(width, height int) DayViewModel {
	v.width = width
	v.height = height
	if v.height < 1 {
		v.height = 1
	}
	return v
}

// SetDay swaps in a day, clamping the scroll position.
func (v DayViewModel) SetDay(day *almanac.Day) DayViewModel {
	if v.day != day {
		v.day = day
		v.clampScroll()
	}
	return v
}

// Update implements the sub-model update contract.
func (v DayViewModel) Update(msg tea.Msg) (DayViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			v.scroll--
		case "down", "j":
			v.scroll++
		case "pgup":
			v.scroll -= v.height
		case "pgdown":
			v.scroll += v.height
		case "home":
			v.scroll = 0
		}
		v.clampScroll()
	}
	return v, nil
}

func (v *DayViewModel) clampScroll() {
	max := 0
	if v.day != nil {
		max = len(v.day.Records) - v.height + 2 // header rows
	}
	if v.scroll > max {
		v.scroll = max
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

var (
	headerRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	nowRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Bold(true)
	nextRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	pastRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
)

// View renders the event table.
func (v DayViewModel) View() string {
	if v.day == nil {
		return "  No data yet"
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("  %-22s %-8s %-12s %s", "Event", "Body", "Time (UTC)", "Detail")))
	b.WriteString("\n  ")
	b.WriteString(pastRowStyle.Render(strings.Repeat("─", 64)))
	b.WriteString("\n")

	rows := v.day.Records
	visible := v.height - 2
	if visible < 1 {
		visible = 1
	}
	end := v.scroll + visible
	if end > len(rows) {
		end = len(rows)
	}

	for _, r := range rows[v.scroll:end] {
		t := r.Outcome.String()
		if r.HasTime() {
			t = r.Time.Convert(astro.ScaleUTC).Time().Format("15:04:05")
		}
		line := fmt.Sprintf("  %-22s %-8s %-12s", r.Kind, r.Body, t)

		var style lipgloss.Style
		switch r.Status {
		case almanac.StatusNow:
			style = nowRowStyle
		case almanac.StatusNext:
			style = nextRowStyle
		case almanac.StatusPast:
			style = pastRowStyle
		default:
			style = lipgloss.NewStyle()
		}
		b.WriteString(style.Render(line))
		if r.Detail != "" {
			b.WriteString(detailStyle.Render(" " + r.Detail))
		}
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString(pastRowStyle.Render(fmt.Sprintf("  … %d more", len(rows)-end)))
		b.WriteString("\n")
	}
	return b.String()
}
