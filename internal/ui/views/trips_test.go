package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jlindgren/wayfarer/internal/domain"
)

func testTrips() []domain.Trip {
	return []domain.Trip{
		{ID: "trip-1", Name: "Fjord hike", Location: "Norway", Rating: 4.7},
		{ID: "trip-2", Name: "Desert camp", Location: "Morocco", Rating: 4.2},
	}
}

func TestTripsViewRendersTrips(t *testing.T) {
	view := NewTripsView()
	view.SetSize(100, 30)
	view.SetTrips(testTrips(), nil)

	out := view.View()
	if !strings.Contains(out, "Fjord hike") || !strings.Contains(out, "Desert camp") {
		t.Error("Expected trip names in view")
	}
	if !strings.Contains(out, "4.7") {
		t.Error("Expected rating in view")
	}
}

func TestTripsViewSavedMarker(t *testing.T) {
	savedSet := map[string]bool{"trip-2": true}

	view := NewTripsView()
	view.SetSize(100, 30)
	view.SetTrips(testTrips(), func(id string) bool { return savedSet[id] })

	if !strings.Contains(view.View(), "♥") {
		t.Error("Expected saved marker for trip-2")
	}

	// Marker follows effective state on refresh without a reload.
	savedSet["trip-2"] = false
	view.RefreshMarkers()
	if strings.Contains(view.View(), "♥") {
		t.Error("Expected marker gone after state change")
	}
}

func TestTripsViewSelectedTripID(t *testing.T) {
	view := NewTripsView()
	view.SetSize(100, 30)
	view.SetTrips(testTrips(), nil)

	if got := view.SelectedTripID(); got != "trip-1" {
		t.Errorf("Expected trip-1 selected, got %q", got)
	}

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := view.SelectedTripID(); got != "trip-2" {
		t.Errorf("Expected trip-2 selected after moving down, got %q", got)
	}
}

func TestTripsViewEmptyAndLoadingStates(t *testing.T) {
	view := NewTripsView()
	view.SetSize(100, 30)

	if !strings.Contains(view.View(), "No trips found") {
		t.Error("Expected empty state message")
	}

	view.SetLoading(true)
	if !strings.Contains(view.View(), "Loading trips") {
		t.Error("Expected loading message")
	}
	if view.SelectedTripID() != "" {
		t.Error("Expected no selection with no trips")
	}
}
