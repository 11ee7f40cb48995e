package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

var _ domain.BlobStore = (*SQLiteBlobStore)(nil)

type SQLiteBlobStore struct {
	db *sqlx.DB
}

func NewSQLiteBlobStore(dbPath string) (*SQLiteBlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &SQLiteBlobStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteBlobStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blobs (
  name TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create blobs table: %w", err)
	}
	return nil
}

func (s *SQLiteBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.GetContext(ctx, &blob, `SELECT payload FROM blobs WHERE name = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}
	return blob, nil
}

func (s *SQLiteBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	const stmt = `
INSERT INTO blobs (name, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  payload=excluded.payload,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, blob, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteBlobStore) Close() error {
	return s.db.Close()
}
