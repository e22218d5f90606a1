package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Harshhrajj/Logfile-analyzer/internal/analyzer"
	"github.com/Harshhrajj/Logfile-analyzer/internal/logreader"
	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// keyMap defines keyboard shortcuts
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type lineMsg logreader.Line

type readErrMsg struct{ err error }

type linesClosedMsg struct{}

type tickMsg time.Time

// Model is the live watch view: it feeds tailed lines through one
// analyzer and refreshes a report snapshot once per second.
type Model struct {
	path     string
	analyzer *analyzer.Analyzer
	lines    <-chan logreader.Line
	errors   <-chan error

	snapshot  *models.Report
	processed int
	closed    bool
	err       error

	width  int
	height int
	keys   keyMap
}

// NewModel creates the watch model for one tailed file.
func NewModel(path string, a *analyzer.Analyzer, lines <-chan logreader.Line, errors <-chan error) Model {
	return Model{
		path:     path,
		analyzer: a,
		lines:    lines,
		errors:   errors,
		snapshot: a.Report(),
		keys:     keys,
	}
}

// Init starts the line pump and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForLine(), m.tick())
}

func (m Model) waitForLine() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-m.lines
		if !ok {
			if err, open := <-m.errors; open && err != nil {
				return readErrMsg{err}
			}
			return linesClosedMsg{}
		}
		return lineMsg(line)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case lineMsg:
		m.analyzer.AnalyzeLine(msg.Text, msg.Number)
		m.processed++
		return m, m.waitForLine()

	case readErrMsg:
		m.err = msg.err
		m.closed = true

	case linesClosedMsg:
		m.closed = true

	case tickMsg:
		m.snapshot = m.analyzer.Report()
		return m, m.tick()
	}

	return m, nil
}

// View renders the live counters and the most recent events.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔒 Live Security Watch: "+m.path) + "\n\n")

	stats := m.snapshot.Stats
	b.WriteString(renderCounter("Total Attacks", stats.TotalAttacks))
	b.WriteString(renderCounter("SQL Injection", stats.SQLInjectionCount))
	b.WriteString(renderCounter("XSS", stats.XSSCount))
	b.WriteString(renderCounter("DDoS", stats.DDoSCount))
	b.WriteString(renderCounter("Brute Force", stats.BruteForceCount))
	b.WriteString(renderCounter("Unique IPs", stats.UniqueIPs))
	b.WriteString(renderCounter("Lines Processed", m.processed))
	b.WriteString("\n")

	b.WriteString(renderRecent("SQL Injection", m.snapshot.SQLInjection))
	b.WriteString(renderRecent("XSS", m.snapshot.XSS))
	b.WriteString(renderRecent("Brute Force", m.snapshot.BruteForce))

	if len(m.snapshot.DDoS) > 0 {
		b.WriteString(sectionStyle.Render("High-Frequency Sources") + "\n")
		for _, event := range lastDDoS(m.snapshot.DDoS, 5) {
			ip := "-"
			if event.IP != nil {
				ip = *event.IP
			}
			b.WriteString(alertStyle.Render(fmt.Sprintf("  line %d  %s  %d requests", event.Line, ip, event.Count)) + "\n")
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(alertStyle.Render("read error: "+m.err.Error()) + "\n")
	} else if m.closed {
		b.WriteString(dimStyle.Render("input closed") + "\n")
	}

	b.WriteString(dimStyle.Render("q: quit"))
	return b.String()
}

func renderCounter(label string, value int) string {
	return labelStyle.Render(fmt.Sprintf("%-18s", label+":")) + countStyle.Render(fmt.Sprintf("%d", value)) + "\n"
}

func renderRecent(title string, events []models.AttackEvent) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recent "+title) + "\n")
	start := len(events) - 5
	if start < 0 {
		start = 0
	}
	for _, event := range events[start:] {
		ip := "-"
		if event.IP != nil {
			ip = *event.IP
		}
		content := event.Content
		if len(content) > 70 {
			content = content[:67] + "..."
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("  line %d  %s  ", event.Line, ip)) + content + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func lastDDoS(events []models.DDoSEvent, n int) []models.DDoSEvent {
	if len(events) <= n {
		return events
	}
	return events[len(events)-n:]
}

// Run starts the watch program and blocks until it exits.
func Run(path string, a *analyzer.Analyzer, lines <-chan logreader.Line, errors <-chan error) error {
	program := tea.NewProgram(NewModel(path, a, lines, errors))
	_, err := program.Run()
	return err
}
