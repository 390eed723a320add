package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestManager(idle time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager("test-secret", idle)
	m.now = clock.now
	return m, clock
}

func TestAuthorize(t *testing.T) {
	m, _ := newTestManager(0)
	a, err := m.Create("", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, _ := m.Create("", nil)

	tests := []struct {
		name    string
		id      string
		token   string
		wantErr error
	}{
		{"own token", a.ID, a.Token, nil},
		{"other session's token", a.ID, b.Token, ErrUnauthorized},
		{"garbage token", a.ID, "abc.def.ghi", ErrUnauthorized},
		{"empty token", a.ID, "", ErrUnauthorized},
		{"unknown session", "sess_missing", a.Token, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := m.Authorize(tt.id, tt.token)
			if tt.wantErr == nil {
				if err != nil || s != a {
					t.Errorf("Authorize() = %v, %v", s, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenExpires(t *testing.T) {
	m, clock := newTestManager(0)
	s, _ := m.Create("", nil)

	clock.t = clock.t.Add(TokenTTL + time.Minute)
	if _, err := m.Authorize(s.ID, s.Token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with an expired token error = %v", err)
	}
}

func TestTokenFromOtherSecret(t *testing.T) {
	m, _ := newTestManager(0)
	other, _ := newTestManager(0)
	other.tokens.secret = []byte("different")

	s, _ := m.Create("", nil)
	forged, _ := other.tokens.issue(s.ID)
	if _, err := m.Authorize(s.ID, forged); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with a foreign signature error = %v", err)
	}
}

func TestPrune(t *testing.T) {
	m, clock := newTestManager(10 * time.Minute)
	idle, _ := m.Create("", nil)
	busy, _ := m.Create("", nil)

	clock.t = clock.t.Add(8 * time.Minute)
	busy.Do(func(*engine.Editor) error { return nil })
	clock.t = clock.t.Add(5 * time.Minute)

	if n := m.Prune(); n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if _, err := m.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Error("idle session survived Prune")
	}
	if _, err := m.Get(busy.ID); err != nil {
		t.Error("busy session was pruned")
	}
}

func TestCreateWithScene(t *testing.T) {
	m, _ := newTestManager(0)
	g := scene.New()
	g.Add(g.GenerateID(), scene.Rectangle{Width: 1, Height: 1}, geom.Identity())

	s, _ := m.Create("doc_1", g)
	if s.DocumentID() != "doc_1" {
		t.Errorf("DocumentID() = %q", s.DocumentID())
	}
	var count int
	s.Do(func(e *engine.Editor) error {
		count = e.ObjectCount()
		return nil
	})
	if count != 1 {
		t.Errorf("ObjectCount() = %d, want 1", count)
	}

	if err := m.Close(s.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.Close(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Close() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestPersistSerializesFirstSave(t *testing.T) {
	m, _ := newTestManager(0)
	s, _ := m.Create("", nil)

	var mu sync.Mutex
	created := 0
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Persist(func(docID string) (string, error) {
				if docID != "" {
					return docID, nil
				}
				mu.Lock()
				created++
				mu.Unlock()
				time.Sleep(time.Millisecond)
				return "doc_new", nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created %d documents, want 1", created)
	}
	if s.DocumentID() != "doc_new" {
		t.Errorf("DocumentID() = %q", s.DocumentID())
	}
}

func TestPersistKeepsIDOnError(t *testing.T) {
	m, _ := newTestManager(0)
	s, _ := m.Create("doc_1", nil)

	boom := errors.New("store down")
	if err := s.Persist(func(string) (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("Persist() error = %v", err)
	}
	if s.DocumentID() != "doc_1" {
		t.Errorf("DocumentID() = %q after failed save", s.DocumentID())
	}
}
