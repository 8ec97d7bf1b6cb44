package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jlindgren/wayfarer/internal/logger"
)

var logTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

// LogsViewModel is a scrollable overlay over the logger's in-memory buffer.
type LogsViewModel struct {
	width  int
	height int
	offset int
	active bool
	logs   []logger.Entry
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LogsViewModel) Activate() {
	m.active = true
	m.logs = logger.GetLogs()
	m.offset = 0
	if len(m.logs) > m.visibleLines() {
		m.offset = len(m.logs) - m.visibleLines()
	}
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
	m.offset = 0
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) visibleLines() int {
	return max(1, m.height-6)
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	maxOffset := max(0, len(m.logs)-m.visibleLines())

	switch keyMsg.String() {
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "down", "j":
		if m.offset < maxOffset {
			m.offset++
		}
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = maxOffset
	}
	return nil
}

func (m *LogsViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(formTitleStyle.Render(fmt.Sprintf("Debug log (%d entries)", len(m.logs))))
	b.WriteString("\n")

	end := min(m.offset+m.visibleLines(), len(m.logs))
	for _, entry := range m.logs[m.offset:end] {
		b.WriteString(logTimestampStyle.Render(entry.Timestamp.Format("15:04:05")))
		b.WriteString(" " + entry.Message + "\n")
	}

	b.WriteString(formHelpStyle.Render("j/k: scroll • g/G: top/bottom • esc: close"))
	return b.String()
}
