package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinicsite/internal/dbx"
)

const (
	qGet    = `SELECT value FROM kv_store WHERE key = ?`
	qDelete = `DELETE FROM kv_store WHERE key = ?`
	qUpsert = `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	qInsertIgnore = `INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`
)

// SQLStore is the durable tier, a single kv_store table in SQLite or Postgres.
type SQLStore struct {
	db *sql.DB

	get, del, upsert, insertIgnore string
}

func NewSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{
		db:           db,
		get:          dbx.Rebind(dialect, qGet),
		del:          dbx.Rebind(dialect, qDelete),
		upsert:       dbx.Rebind(dialect, qUpsert),
		insertIgnore: dbx.Rebind(dialect, qInsertIgnore),
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.getFrom(ctx, s.db, key)
}

func (s *SQLStore) getFrom(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, s.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) SetIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error) {
	var stored []byte
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, s.insertIgnore, key, value); err != nil {
			return fmt.Errorf("failed to init kv[%s]: %w", key, err)
		}
		v, err := s.getFrom(ctx, tx, key)
		if err != nil {
			return err
		}
		stored = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}
