// Package session hosts one engine.Editor per open document and hands out
// signed tokens that grant access to it.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/inkframe/inkframe/backend-go/internal/engine"
)

// Session owns an editor. All editor access goes through Do, which
// serializes callers.
type Session struct {
	ID    string
	Token string

	mu     sync.Mutex
	editor *engine.Editor

	saveMu     sync.Mutex
	meta       sync.Mutex
	documentID string

	lastUsed atomic.Int64 // unix nanos
	now      func() time.Time
}

// Do runs fn with exclusive access to the editor and marks the session
// used.
func (s *Session) Do(fn func(e *engine.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(s.now())
	return fn(s.editor)
}

// DocumentID is the stored document the session saves to, or "" when it
// has never been saved.
func (s *Session) DocumentID() string {
	s.meta.Lock()
	defer s.meta.Unlock()
	return s.documentID
}

// Persist calls save with the current document id and records the id it
// returns. Calls are serialized, so only the first save of a new session
// sees an empty id.
func (s *Session) Persist(save func(docID string) (string, error)) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	id, err := save(s.DocumentID())
	if err != nil {
		return err
	}
	s.meta.Lock()
	s.documentID = id
	s.meta.Unlock()
	return nil
}

// LastUsed returns when Do last ran.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

func (s *Session) touch(t time.Time) {
	s.lastUsed.Store(t.UnixNano())
}
