package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
	"github.com/inkframe/inkframe/backend-go/internal/typeid"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Manager tracks open sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	tokens      tokenIssuer
	idleTimeout time.Duration
	editorOpts  []engine.Option
	now         func() time.Time
}

// NewManager creates a manager signing tokens with jwtSecret. Sessions not
// used for idleTimeout are dropped by Prune; zero disables pruning.
func NewManager(jwtSecret string, idleTimeout time.Duration, opts ...engine.Option) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		editorOpts:  opts,
		now:         time.Now,
	}
	m.tokens = tokenIssuer{secret: []byte(jwtSecret), now: func() time.Time { return m.now() }}
	return m
}

// Create opens a session editing g, or an empty scene when g is nil.
func (m *Manager) Create(documentID string, g *scene.Graph) (*Session, error) {
	id := typeid.NewSessionID()
	token, err := m.tokens.issue(id)
	if err != nil {
		return nil, err
	}

	editor := engine.NewEditor(m.editorOpts...)
	if g != nil {
		editor.ReplaceScene(g)
	}
	s := &Session{ID: id, Token: token, editor: editor, documentID: documentID, now: m.now}
	s.touch(m.now())

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	slog.Info("session opened", "session", id, "document", documentID)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Authorize returns session id when token was issued for it.
func (m *Manager) Authorize(id, token string) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	sub, err := m.tokens.validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if sub != id {
		return nil, fmt.Errorf("%w: token issued for another session", ErrUnauthorized)
	}
	return s, nil
}

// Close drops a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	slog.Info("session closed", "session", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune drops sessions idle for longer than the idle timeout and returns
// how many were dropped.
func (m *Manager) Prune() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		slog.Info("pruned idle sessions", "count", n)
	}
	return n
}

// Run prunes every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Prune()
		case <-ctx.Done():
			return
		}
	}
}
