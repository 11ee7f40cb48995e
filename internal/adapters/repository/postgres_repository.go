package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const DefaultPostgresTable = "kanso_blobs"

var _ domain.BlobStore = (*PostgresBlobStore)(nil)

type PostgresBlobStore struct {
	db    *sqlx.DB
	table string
}

// NewPostgresBlobStore stores blobs in table, created on demand by
// EnsureSchema.
func NewPostgresBlobStore(db *sqlx.DB, table string) *PostgresBlobStore {
	if table == "" {
		table = DefaultPostgresTable
	}
	return &PostgresBlobStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}
}

func (r *PostgresBlobStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            name       TEXT PRIMARY KEY,
            payload    BYTEA NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

func (r *PostgresBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE name = $1`, r.table)

	var blob []byte
	err := r.db.GetContext(ctx, &blob, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}
	return blob, nil
}

func (r *PostgresBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (name, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (name) DO UPDATE SET
            payload = EXCLUDED.payload,
            updated_at = EXCLUDED.updated_at`, r.table)

	if _, err := r.db.ExecContext(ctx, query, key, blob); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}
