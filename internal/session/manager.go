package session

import (
	"fmt"
	"sync"

	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/logger"
)

// TokenSink receives credential changes. The API client implements it so a
// session transition and the header it implies happen as one step.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// Manager owns the session state machine. It starts in StateUnknown and
// resolves once, via Bootstrap, before any authenticated call is made.
type Manager struct {
	mu    sync.Mutex
	state domain.SessionState
	token string
	store domain.CredentialStore
	sink  TokenSink
}

func NewManager(store domain.CredentialStore, sink TokenSink) *Manager {
	return &Manager{
		state: domain.StateUnknown,
		store: store,
		sink:  sink,
	}
}

// Bootstrap reads the credential store and resolves the initial state.
// A storage failure resolves to unauthenticated rather than propagating.
// Calling it again after the state has resolved is a no-op.
func (m *Manager) Bootstrap() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != domain.StateUnknown {
		return m.state
	}

	token, err := m.store.Read()
	if err != nil {
		logger.LogError("SESSION_BOOTSTRAP", err)
		token = ""
	}

	if token == "" {
		m.state = domain.StateUnauthenticated
		logger.Log("Session bootstrapped: unauthenticated")
		return m.state
	}

	m.token = token
	m.state = domain.StateAuthenticated
	m.sink.SetToken(token)
	logger.Log("Session bootstrapped: authenticated")
	return m.state
}

// SetToken records a freshly issued token. The store write is best effort;
// in-memory state stays authoritative for this process even if it fails.
func (m *Manager) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty session token", domain.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Write(token); err != nil {
		logger.LogError("SESSION_PERSIST", err)
	}

	m.token = token
	m.state = domain.StateAuthenticated
	m.sink.SetToken(token)
	logger.Log("Session authenticated")
	return nil
}

// Invalidate drops the credential everywhere: store, memory, API client.
// Safe to call repeatedly; an unauthenticated session stays unauthenticated.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == domain.StateUnauthenticated {
		return
	}

	if err := m.store.Clear(); err != nil {
		logger.LogError("SESSION_CLEAR", err)
	}

	m.token = ""
	m.state = domain.StateUnauthenticated
	m.sink.ClearToken()
	logger.Log("Session invalidated")
}

func (m *Manager) Current() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
