package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jlindgren/wayfarer/internal/domain"
)

type TripsViewModel struct {
	table   table.Model
	spinner spinner.Model
	trips   []domain.Trip
	isSaved func(tripID string) bool
	loading bool
	title   string
	width   int
	height  int
}

func NewTripsView() *TripsViewModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Trip", Width: 32},
		{Title: "Location", Width: 24},
		{Title: "Rating", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		Bold(false).
		Foreground(lipgloss.Color("#6B7280"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F59E0B")).
		Background(lipgloss.Color("#1F2937")).
		Bold(true)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &TripsViewModel{
		table:   t,
		spinner: sp,
		title:   "Trips",
		isSaved: func(string) bool { return false },
	}
}

func (m *TripsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(1, height-8))
}

func (m *TripsViewModel) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

func (m *TripsViewModel) IsLoading() bool {
	return m.loading
}

// SetTrips replaces the listing. isSaved resolves the effective saved state
// per trip at render time, so optimistic toggles show up without a reload.
func (m *TripsViewModel) SetTrips(trips []domain.Trip, isSaved func(tripID string) bool) {
	m.trips = trips
	if isSaved != nil {
		m.isSaved = isSaved
	}
	m.rebuildRows()
}

// RefreshMarkers re-renders the saved column from the current effective state.
func (m *TripsViewModel) RefreshMarkers() {
	m.rebuildRows()
}

func (m *TripsViewModel) rebuildRows() {
	rows := make([]table.Row, len(m.trips))
	for i, trip := range m.trips {
		marker := " "
		if m.isSaved(trip.ID) {
			marker = "♥"
		}

		rating := "—"
		if trip.Rating > 0 {
			rating = fmt.Sprintf("%.1f", trip.Rating)
		}

		rows[i] = table.Row{marker, trip.Name, trip.Location, rating}
	}
	m.table.SetRows(rows)
}

func (m *TripsViewModel) SelectedTripID() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.trips) {
		return ""
	}
	return m.trips[cursor].ID
}

func (m *TripsViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if _, ok := msg.(spinner.TickMsg); ok {
		if !m.loading {
			return nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *TripsViewModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading trips...\n", m.spinner.View())
	}

	if len(m.trips) == 0 {
		return "\n  " + formHelpStyle.Render("No trips found") + "\n"
	}

	return m.table.View()
}
