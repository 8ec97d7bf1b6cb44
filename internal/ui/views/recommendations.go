package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jlindgren/wayfarer/internal/domain"
)

var (
	recNameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Bold(true)
	recLocationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	recCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

type RecommendationsViewModel struct {
	recs     []domain.Trip
	cursor   int
	loading  bool
	errorMsg string
	width    int
	height   int
}

func NewRecommendationsView() *RecommendationsViewModel {
	return &RecommendationsViewModel{}
}

func (m *RecommendationsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *RecommendationsViewModel) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.errorMsg = ""
	}
}

func (m *RecommendationsViewModel) SetRecommendations(recs []domain.Trip) {
	m.recs = recs
	m.cursor = 0
	m.loading = false
	m.errorMsg = ""
}

func (m *RecommendationsViewModel) SetError(msg string) {
	m.loading = false
	m.errorMsg = msg
}

func (m *RecommendationsViewModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.recs)-1 {
			m.cursor++
		}
	}
	return nil
}

func (m *RecommendationsViewModel) View() string {
	if m.loading {
		return "\n  " + formHelpStyle.Render("Loading recommendations...") + "\n"
	}

	if m.errorMsg != "" {
		return "\n  " + formErrorStyle.Render(m.errorMsg) + "\n" +
			"  " + formHelpStyle.Render("r: retry") + "\n"
	}

	if len(m.recs) == 0 {
		return "\n  " + formHelpStyle.Render("No recommendations available yet. Check back later!") + "\n"
	}

	var b strings.Builder
	for i, rec := range m.recs {
		cursor := "  "
		if i == m.cursor {
			cursor = recCursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%s%s", cursor, recNameStyle.Render(rec.Name))
		if rec.Location != "" {
			line += "  " + recLocationStyle.Render(rec.Location)
		}
		if rec.Rating > 0 {
			line += "  " + recLocationStyle.Render(fmt.Sprintf("★ %.1f", rec.Rating))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
