package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jlindgren/wayfarer/internal/domain"
)

type fakeStore struct {
	token    string
	readErr  error
	writeErr error
	writes   int
	clears   int
}

func (s *fakeStore) Read() (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	return s.token, nil
}

func (s *fakeStore) Write(token string) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.token = token
	return nil
}

func (s *fakeStore) Clear() error {
	s.clears++
	s.token = ""
	return nil
}

type fakeSink struct {
	token  string
	sets   int
	clears int
}

func (s *fakeSink) SetToken(token string) {
	s.token = token
	s.sets++
}

func (s *fakeSink) ClearToken() {
	s.token = ""
	s.clears++
}

func TestBootstrapWithStoredToken(t *testing.T) {
	store := &fakeStore{token: "tok_stored"}
	sink := &fakeSink{}
	m := NewManager(store, sink)

	if m.Current() != domain.StateUnknown {
		t.Fatalf("Expected initial state unknown, got %v", m.Current())
	}

	state := m.Bootstrap()
	if state != domain.StateAuthenticated {
		t.Errorf("Expected authenticated, got %v", state)
	}
	if sink.token != "tok_stored" {
		t.Errorf("Expected token propagated to sink, got %q", sink.token)
	}
}

func TestBootstrapWithoutToken(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	m := NewManager(store, sink)

	state := m.Bootstrap()
	if state != domain.StateUnauthenticated {
		t.Errorf("Expected unauthenticated, got %v", state)
	}
	if sink.sets != 0 {
		t.Errorf("Expected no token propagation, got %d sets", sink.sets)
	}
}

func TestBootstrapStorageFailureFailsOpen(t *testing.T) {
	store := &fakeStore{readErr: fmt.Errorf("%w: disk gone", domain.ErrStorageUnavailable)}
	sink := &fakeSink{}
	m := NewManager(store, sink)

	state := m.Bootstrap()
	if state != domain.StateUnauthenticated {
		t.Errorf("Expected unauthenticated on storage failure, got %v", state)
	}
}

func TestBootstrapResolvesOnce(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	m := NewManager(store, sink)

	m.Bootstrap()
	store.token = "tok_late"

	if state := m.Bootstrap(); state != domain.StateUnauthenticated {
		t.Errorf("Expected second bootstrap to keep resolved state, got %v", state)
	}
}

func TestSetTokenRoundTrip(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	m := NewManager(store, sink)
	m.Bootstrap()

	if err := m.SetToken("tok_abc123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if m.Current() != domain.StateAuthenticated {
		t.Errorf("Expected authenticated, got %v", m.Current())
	}
	if sink.token != "tok_abc123" {
		t.Errorf("Expected token propagated, got %q", sink.token)
	}

	// Simulated restart: a fresh manager over the same store.
	sink2 := &fakeSink{}
	m2 := NewManager(store, sink2)
	if state := m2.Bootstrap(); state != domain.StateAuthenticated {
		t.Errorf("Expected authenticated after restart, got %v", state)
	}
	if sink2.token != "tok_abc123" {
		t.Errorf("Expected stored token after restart, got %q", sink2.token)
	}
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	m := NewManager(store, sink)
	m.Bootstrap()

	err := m.SetToken("")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	if m.Current() != domain.StateUnauthenticated {
		t.Errorf("Expected state unchanged, got %v", m.Current())
	}
}

func TestSetTokenSurvivesStorageFailure(t *testing.T) {
	store := &fakeStore{writeErr: fmt.Errorf("%w: disk gone", domain.ErrStorageUnavailable)}
	sink := &fakeSink{}
	m := NewManager(store, sink)
	m.Bootstrap()

	if err := m.SetToken("tok_abc123"); err != nil {
		t.Fatalf("SetToken should absorb storage failure, got %v", err)
	}
	if m.Current() != domain.StateAuthenticated {
		t.Errorf("Expected authenticated despite storage failure, got %v", m.Current())
	}
	if sink.token != "tok_abc123" {
		t.Errorf("Expected token propagated despite storage failure, got %q", sink.token)
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	store := &fakeStore{token: "tok_stored"}
	sink := &fakeSink{}
	m := NewManager(store, sink)
	m.Bootstrap()

	m.Invalidate()
	if m.Current() != domain.StateUnauthenticated {
		t.Fatalf("Expected unauthenticated, got %v", m.Current())
	}
	clearsAfterFirst := store.clears

	m.Invalidate()
	if m.Current() != domain.StateUnauthenticated {
		t.Errorf("Expected unauthenticated, got %v", m.Current())
	}
	if store.clears != clearsAfterFirst {
		t.Errorf("Expected second invalidate to be a no-op, store cleared %d extra times", store.clears-clearsAfterFirst)
	}
	if sink.clears != 1 {
		t.Errorf("Expected exactly one sink clear, got %d", sink.clears)
	}
}
