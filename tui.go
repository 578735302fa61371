package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hotkeyd/action"
)

// TUI message types
type BindingsMsg struct{ Rows []BindingRow }
type FiredMsg struct {
	ID    uint32
	Label string
	Count uint64
}
type ActionDoneMsg struct{ Result action.Result }
type NoticeMsg struct{ Text string }
type tickMsg time.Time

const flashFor = 1500 * time.Millisecond

type tuiModel struct {
	width, height int
	backend       string // "evdev"
	configPath    string
	rows          []BindingRow
	fired         uint64 // presses seen this session
	lastID        uint32
	lastAt        time.Time
	lastAction    string // "#3 exec ok (12ms)"
	notice        string
	now           time.Time

	ready     chan struct{}
	readyOnce *sync.Once
}

// Pre-computed styles to avoid allocations in render loop
var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

// tuiSink forwards daemon events into a running Bubble Tea program.
type tuiSink struct {
	program *tea.Program
	ready   chan struct{}
}

func newTUISink(backend, configPath string) *tuiSink {
	ready := make(chan struct{})
	m := tuiModel{
		backend:    backend,
		configPath: configPath,
		ready:      ready,
		readyOnce:  &sync.Once{},
	}
	return &tuiSink{
		program: tea.NewProgram(m, tea.WithAltScreen()),
		ready:   ready,
	}
}

func (s *tuiSink) Bindings(rows []BindingRow) { s.program.Send(BindingsMsg{Rows: rows}) }

func (s *tuiSink) Fired(id uint32, label string, count uint64) {
	s.program.Send(FiredMsg{ID: id, Label: label, Count: count})
}

func (s *tuiSink) ActionDone(res action.Result) { s.program.Send(ActionDoneMsg{Result: res}) }
func (s *tuiSink) Notice(text string)           { s.program.Send(NoticeMsg{Text: text}) }

func tuiTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	if m.readyOnce != nil {
		m.readyOnce.Do(func() { close(m.ready) })
	}
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		return m, tuiTick()

	case BindingsMsg:
		m.rows = msg.Rows

	case FiredMsg:
		m.fired++
		m.lastID = msg.ID
		m.lastAt = time.Now()
		for i := range m.rows {
			if m.rows[i].ID == msg.ID {
				m.rows[i].Fires = msg.Count
			}
		}

	case ActionDoneMsg:
		res := msg.Result
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
		}
		m.lastAction = fmt.Sprintf("#%d %s %s (%s)", res.ID, res.Kind, status, res.Took.Round(time.Millisecond))
		for i := range m.rows {
			if m.rows[i].ID == res.ID {
				m.rows[i].Last = status
			}
		}

	case NoticeMsg:
		m.notice = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("hotkeyd "+version) + "  " +
		dimStyle.Render(fmt.Sprintf("[%s | %s]", m.backend, m.configPath)) + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("No bindings registered") + "\n")
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-24s %-6s %-7s %s", "ID", "HOTKEY", "ACTION", "FIRED", "LABEL")) + "\n")
		labelWidth := max(m.width-46, 10)
		for _, r := range m.rows {
			style := rowStyle
			if r.ID == m.lastID && m.now.Sub(m.lastAt) < flashFor {
				style = flashStyle
			}
			line := fmt.Sprintf("%-5d %-24s %-6s %-7d %s", r.ID, r.Hotkey, r.Kind, r.Fires, truncate(r.Label, labelWidth))
			b.WriteString(style.Render(line))
			switch {
			case r.Last == "":
			case r.Last == "ok":
				b.WriteString(" " + okStyle.Render("✓"))
			default:
				b.WriteString(" " + errStyle.Render("✗"))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d presses", m.fired)) + "\n")
	if m.lastAction != "" {
		b.WriteString(dimStyle.Render("last: "+truncate(m.lastAction, m.width-6)) + "\n")
	}
	if m.notice != "" {
		b.WriteString(dimStyle.Render(truncate(m.notice, m.width)) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("q to quit"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		PaddingLeft(1).
		Render(b.String())
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
