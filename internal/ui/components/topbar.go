package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	topBarStyle   = lipgloss.NewStyle().Padding(0, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

type TopBarModel struct {
	width       int
	session     string
	currentView string
	shortcuts   []string
}

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetSession(session string) {
	m.session = session
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

// SetShortcuts takes entries in "<key> description" form.
func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	var parts []string
	parts = append(parts, titleStyle.Render("Wayfarer"))

	if m.currentView != "" {
		parts = append(parts, labelStyle.Render("view: ")+valueStyle.Render(m.currentView))
	}
	if m.session != "" {
		parts = append(parts, labelStyle.Render("session: ")+valueStyle.Render(m.session))
	}

	line := strings.Join(parts, descStyle.Render("  │  "))

	var keys []string
	for _, shortcut := range m.shortcuts {
		key, desc, ok := strings.Cut(shortcut, " ")
		if !ok {
			continue
		}
		keys = append(keys, shortcutStyle.Render(key)+" "+descStyle.Render(desc))
	}

	content := line
	if len(keys) > 0 {
		content += "\n" + strings.Join(keys, "   ")
	}

	return topBarStyle.Width(m.width).Render(content)
}
