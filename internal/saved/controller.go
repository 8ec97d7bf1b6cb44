package saved

import (
	"context"
	"sync"

	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/logger"
)

// TripSaver is the slice of the backend API the controller needs.
type TripSaver interface {
	SavedTrips(ctx context.Context) ([]domain.Trip, error)
	SaveTrip(ctx context.Context, tripID string) error
	UnsaveTrip(ctx context.Context, tripID string) error
}

type mutation struct {
	target   bool
	previous bool
}

// Controller owns the saved-trips set. Toggles apply to the visible state
// immediately and reconcile once the server answers: success commits into
// the confirmed set, failure drops the pending entry so the visible state
// falls back to what the server last confirmed.
//
// At most one mutation per trip id is ever in flight; a toggle on a trip
// with a pending mutation is a silent no-op.
type Controller struct {
	api TripSaver

	mu        sync.Mutex
	confirmed map[string]struct{}
	pending   map[string]mutation
}

func NewController(api TripSaver) *Controller {
	return &Controller{
		api:       api,
		confirmed: make(map[string]struct{}),
		pending:   make(map[string]mutation),
	}
}

// Load seeds the confirmed set from the server and discards any pending
// mutations. In-flight toggles from before a reload never carry over.
func (c *Controller) Load(ctx context.Context) error {
	trips, err := c.api.SavedTrips(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.confirmed = make(map[string]struct{}, len(trips))
	for _, trip := range trips {
		c.confirmed[trip.ID] = struct{}{}
	}
	c.pending = make(map[string]mutation)

	logger.Log("Saved set loaded: %d trips", len(trips))
	return nil
}

// IsSaved reports the effective state: a pending mutation's target if one
// exists, otherwise confirmed membership.
func (c *Controller) IsSaved(tripID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveState(tripID)
}

func (c *Controller) effectiveState(tripID string) bool {
	if m, ok := c.pending[tripID]; ok {
		return m.target
	}
	_, ok := c.confirmed[tripID]
	return ok
}

// StartToggle applies a toggle optimistically and reports whether a network
// call should follow. It returns false when a mutation for the trip is
// already in flight. No I/O happens here.
func (c *Controller) StartToggle(tripID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inFlight := c.pending[tripID]; inFlight {
		logger.Log("Toggle ignored, mutation already pending for %s", tripID)
		return false
	}

	previous := c.effectiveState(tripID)
	c.pending[tripID] = mutation{target: !previous, previous: previous}
	return true
}

// FinishToggle performs the network call for a toggle started with
// StartToggle and reconciles the result. On failure the pending entry is
// dropped and the error returned for the caller's notification; the
// confirmed set is never touched, so the visible state reverts on its own.
func (c *Controller) FinishToggle(ctx context.Context, tripID string) error {
	c.mu.Lock()
	m, ok := c.pending[tripID]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	var err error
	if m.target {
		err = c.api.SaveTrip(ctx, tripID)
	} else {
		err = c.api.UnsaveTrip(ctx, tripID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, tripID)

	if err != nil {
		logger.LogError("TOGGLE_SAVED "+tripID, err)
		return err
	}

	if m.target {
		c.confirmed[tripID] = struct{}{}
	} else {
		delete(c.confirmed, tripID)
	}
	return nil
}

// ToggleSaved runs the full toggle cycle. Callers that need the optimistic
// update to be visible before the network round trip use StartToggle and
// FinishToggle separately.
func (c *Controller) ToggleSaved(ctx context.Context, tripID string) error {
	if !c.StartToggle(tripID) {
		return nil
	}
	return c.FinishToggle(ctx, tripID)
}
