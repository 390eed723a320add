// Package store persists scene documents as versioned JSON snapshots.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Document is the metadata of a stored scene.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is one saved version of a document.
type Snapshot struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"documentId"`
	Version    int             `json:"version"`
	Data       json.RawMessage `json:"document"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Store is implemented by Postgres and Memory.
type Store interface {
	// Create stores a new document with data as version 1.
	Create(ctx context.Context, name string, data json.RawMessage) (*Document, error)
	// SaveVersion appends a snapshot and returns its version number.
	SaveVersion(ctx context.Context, docID string, data json.RawMessage) (int, error)
	Latest(ctx context.Context, docID string) (*Snapshot, error)
	// List returns every document, most recently updated first.
	List(ctx context.Context) ([]Document, error)
}
