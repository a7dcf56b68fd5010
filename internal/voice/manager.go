package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fintakip/backend/internal/finance"
)

// ErrUnknownSession is returned for events carrying a session identifier
// the manager does not know.
var ErrUnknownSession = errors.New("unknown voice session")

// Manager tracks one pipeline per active voice session for the HTTP
// layer. Sessions are created on start and removed on stop.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Pipeline
	factory  func() *Pipeline
}

// NewManager creates a manager that builds pipelines with factory.
func NewManager(factory func() *Pipeline) *Manager {
	return &Manager{
		sessions: make(map[string]*Pipeline),
		factory:  factory,
	}
}

// Start opens a new session and starts its pipeline, returning the
// session identifier. If the pipeline fails to start (capture denied)
// no session is registered.
func (m *Manager) Start(ctx context.Context) (string, error) {
	p := m.factory()
	if err := p.Start(ctx); err != nil {
		return "", err
	}

	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = p
	m.mu.Unlock()
	return id, nil
}

// AddSegment routes a transcription result event to its session.
func (m *Manager) AddSegment(id, text string, final bool) error {
	p, ok := m.get(id)
	if !ok {
		return ErrUnknownSession
	}
	p.AddSegment(text, final)
	return nil
}

// RecognizerEnded routes a recognition-terminated event and reports
// whether the client should restart its recognizer.
func (m *Manager) RecognizerEnded(id string) (bool, error) {
	p, ok := m.get(id)
	if !ok {
		return false, ErrUnknownSession
	}
	return p.RecognizerEnded(), nil
}

// Stop stops the session's pipeline and removes the session. The
// returned transaction is non-nil only when extraction produced a
// confirmed record.
func (m *Manager) Stop(ctx context.Context, id string) (*finance.Transaction, error) {
	m.mu.Lock()
	p, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return nil, ErrUnknownSession
	}
	return p.Stop(ctx)
}

// Active returns the number of open sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) get(id string) (*Pipeline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.sessions[id]
	return p, ok
}
