package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gssem/internal/report"
	"github.com/san-kum/gssem/internal/trajectory"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type view int

const (
	viewSteps view = iota
	viewRecord
	viewSeries
)

type model struct {
	view  view
	runID string
	traj  *trajectory.Trajectory

	step   int
	column int
	series int
	offset int

	width  int
	height int
}

// NewBrowser returns a read-only viewer over a finished run.
func NewBrowser(runID string, traj *trajectory.Trajectory) *model {
	return &model{
		view:   viewSteps,
		runID:  runID,
		traj:   traj,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) pageSize() int {
	return max(m.height-8, 5)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.view = (m.view + 1) % 3
		m.offset = 0
		return m, nil
	}

	switch m.view {
	case viewSteps:
		return m.stepsKey(msg)
	case viewRecord:
		return m.recordKey(msg)
	case viewSeries:
		return m.seriesKey(msg)
	}
	return m, nil
}

func (m model) stepsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	n := len(m.traj.Records)
	switch msg.String() {
	case "up", "k":
		if m.step > 0 {
			m.step--
		}
	case "down", "j":
		if m.step < n-1 {
			m.step++
		}
	case "pgdown", "right", "l":
		m.step = min(m.step+m.pageSize(), max(n-1, 0))
	case "pgup", "left", "h":
		m.step = max(m.step-m.pageSize(), 0)
	case "home", "g":
		m.step = 0
	case "end", "G":
		m.step = max(n-1, 0)
	case "enter", " ":
		m.view = viewRecord
		m.offset = 0
	}
	return m, nil
}

func (m model) recordKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewSteps
	case "up", "k":
		if m.column > 0 {
			m.column--
		}
	case "down", "j":
		if m.column < len(trajectory.Columns)-1 {
			m.column++
		}
	case "left", "h":
		if m.step > 0 {
			m.step--
		}
	case "right", "l":
		if m.step < len(m.traj.Records)-1 {
			m.step++
		}
	}
	return m, nil
}

func (m model) seriesKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewSteps
	case "up", "k":
		if m.series > 0 {
			m.series--
		}
	case "down", "j":
		if m.series < len(m.traj.Series)-1 {
			m.series++
		}
	}
	return m, nil
}

// window returns the first visible index so cursor stays on screen.
func window(cursor, n, size int) int {
	if n <= size {
		return 0
	}
	start := cursor - size/2
	return max(0, min(start, n-size))
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render(m.runID) + "  " + dim.Render(m.title()) + "\n")
	b.WriteString(dimmer.Render("  "+strings.Repeat("─", max(m.width-4, 20))) + "\n\n")

	switch m.view {
	case viewSteps:
		b.WriteString(m.renderSteps())
	case viewRecord:
		b.WriteString(m.renderRecord())
	case viewSeries:
		b.WriteString(m.renderSeries())
	}

	b.WriteString("\n" + dim.Render("  "+m.help()) + "\n")
	return b.String()
}

func (m model) title() string {
	switch m.view {
	case viewRecord:
		return fmt.Sprintf("step %d of %d", m.step, len(m.traj.Records))
	case viewSeries:
		return fmt.Sprintf("%d series", len(m.traj.Series))
	}
	return fmt.Sprintf("%d flow records", len(m.traj.Records))
}

func (m model) help() string {
	switch m.view {
	case viewRecord:
		return "↑↓ column  ←→ step  esc back  tab next view  q quit"
	case viewSeries:
		return "↑↓ series  esc back  tab next view  q quit"
	}
	return "↑↓ step  pgup/pgdn page  enter open  tab next view  q quit"
}

var stepColumns = []string{"W", "weightedprice", "EEproduction", "EMF", "mHH"}

func (m model) renderSteps() string {
	var b strings.Builder
	header := fmt.Sprintf("    %5s", "step")
	for _, c := range stepColumns {
		header += fmt.Sprintf(" %14s", c)
	}
	b.WriteString(dim.Render(header) + "\n")

	n := len(m.traj.Records)
	size := m.pageSize()
	start := window(m.step, n, size)
	for i := start; i < min(start+size, n); i++ {
		row := m.traj.Records[i].Values()
		line := fmt.Sprintf("%5d", i)
		for _, c := range stepColumns {
			line += fmt.Sprintf(" %14.6g", row[trajectory.ColumnIndex(c)])
		}
		if i == m.step {
			b.WriteString("  " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			b.WriteString("    " + dim.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m model) renderRecord() string {
	if len(m.traj.Records) == 0 {
		return dim.Render("    no records") + "\n"
	}
	var b strings.Builder
	row := m.traj.Records[m.step].Values()

	n := len(trajectory.Columns)
	size := m.pageSize()
	start := window(m.column, n, size)
	for k := start; k < min(start+size, n); k++ {
		name := fmt.Sprintf("%-18s", trajectory.Columns[k])
		val := fmt.Sprintf("%16.8g", row[k])
		if k == m.column {
			b.WriteString("  " + cyan.Render("▸ ") + white.Render(name) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("    " + dim.Render(name) + dim.Render(val) + "\n")
		}
	}
	return b.String()
}

func (m model) renderSeries() string {
	if len(m.traj.Series) == 0 {
		return dim.Render("    no series") + "\n"
	}
	var b strings.Builder
	n := len(m.traj.Series)
	size := m.pageSize() - 2
	start := window(m.series, n, size)
	for k := start; k < min(start+size, n); k++ {
		s := m.traj.Series[k]
		name := fmt.Sprintf("%2d %-18s", k, s.Name)
		if k == m.series {
			b.WriteString("  " + cyan.Render("▸ ") + white.Render(name) + "\n")
		} else {
			b.WriteString("    " + dim.Render(name) + "\n")
		}
	}

	s := m.traj.Series[m.series]
	last := 0.0
	if len(s.Values) > 0 {
		last = s.Values[len(s.Values)-1]
	}
	b.WriteString("\n    " + report.Sparkline(s.Values, max(m.width-24, 10)) +
		"  " + magenta.Render(fmt.Sprintf("%.6g", last)) + "\n")
	return b.String()
}

// Browse runs the viewer in the alternate screen until the user quits.
func Browse(runID string, traj *trajectory.Trajectory) error {
	p := tea.NewProgram(NewBrowser(runID, traj), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
