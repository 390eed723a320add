package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkframe/inkframe/backend-go/internal/typeid"
)

// Schema creates the tables used by Postgres. Migrate applies it.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	version     INTEGER NOT NULL,
	document    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (document_id, version)
);
`

// Postgres stores documents in a connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPool connects to databaseURL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Create(ctx context.Context, name string, data json.RawMessage) (*Document, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	doc := Document{ID: typeid.NewDocumentID(), Name: name, Version: 1}
	err = tx.QueryRow(ctx,
		`INSERT INTO documents (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		doc.ID, doc.Name,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshots (id, document_id, version, document) VALUES ($1, $2, 1, $3)`,
		typeid.NewSnapshotID(), doc.ID, []byte(data),
	)
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &doc, nil
}

func (p *Postgres) SaveVersion(ctx context.Context, docID string, data json.RawMessage) (int, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// The row lock serializes concurrent saves of one document.
	var version int
	err = tx.QueryRow(ctx,
		`UPDATE documents SET version = version + 1, updated_at = now() WHERE id = $1 RETURNING version`,
		docID,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("bump version: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshots (id, document_id, version, document) VALUES ($1, $2, $3, $4)`,
		typeid.NewSnapshotID(), docID, version, []byte(data),
	)
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

func (p *Postgres) Latest(ctx context.Context, docID string) (*Snapshot, error) {
	var snap Snapshot
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT id, document_id, version, document, created_at
		   FROM snapshots WHERE document_id = $1
		  ORDER BY version DESC LIMIT 1`,
		docID,
	).Scan(&snap.ID, &snap.DocumentID, &snap.Version, &data, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	snap.Data = data
	return &snap, nil
}

func (p *Postgres) List(ctx context.Context) ([]Document, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, version, created_at, updated_at FROM documents ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var d Document
		err := row.Scan(&d.ID, &d.Name, &d.Version, &d.CreatedAt, &d.UpdatedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
