package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStorage keeps records in the kv_records table (see internal/db/migrations)
type SQLStorage struct {
	db *sqlx.DB
}

func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM kv_records WHERE name = $1`

	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *SQLStorage) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_records (name, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_records WHERE name = $1`
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}
