package store

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/inkframe/inkframe/backend-go/internal/typeid"
)

// Memory keeps documents in process. It backs tests and database-less runs.
type Memory struct {
	mu        sync.RWMutex
	docs      map[string]*Document
	snapshots map[string][]Snapshot
	now       func() time.Time
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		docs:      make(map[string]*Document),
		snapshots: make(map[string][]Snapshot),
		now:       time.Now,
	}
}

func (m *Memory) Create(_ context.Context, name string, data json.RawMessage) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	doc := &Document{ID: typeid.NewDocumentID(), Name: name, Version: 1, CreatedAt: now, UpdatedAt: now}
	m.docs[doc.ID] = doc
	m.snapshots[doc.ID] = []Snapshot{{
		ID:         typeid.NewSnapshotID(),
		DocumentID: doc.ID,
		Version:    1,
		Data:       slices.Clone(data),
		CreatedAt:  now,
	}}
	out := *doc
	return &out, nil
}

func (m *Memory) SaveVersion(_ context.Context, docID string, data json.RawMessage) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[docID]
	if !ok {
		return 0, ErrNotFound
	}
	now := m.now().UTC()
	doc.Version++
	doc.UpdatedAt = now
	m.snapshots[docID] = append(m.snapshots[docID], Snapshot{
		ID:         typeid.NewSnapshotID(),
		DocumentID: docID,
		Version:    doc.Version,
		Data:       slices.Clone(data),
		CreatedAt:  now,
	})
	return doc.Version, nil
}

func (m *Memory) Latest(_ context.Context, docID string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snaps := m.snapshots[docID]
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}
	snap := snaps[len(snaps)-1]
	snap.Data = slices.Clone(snap.Data)
	return &snap, nil
}

func (m *Memory) List(_ context.Context) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.docs))
	for _, d := range m.docs {
		docs = append(docs, *d)
	}
	slices.SortFunc(docs, func(a, b Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return docs, nil
}
