package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/subspace-wallet/internal/model"
)

var _ model.Storage = (*EntryRepository)(nil)

type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EntryRepository stores wallet entries in the wallet_entries table.
type EntryRepository struct {
	db dbtx
}

func NewEntryRepository(db *Connection) *EntryRepository {
	return &EntryRepository{
		db: db,
	}
}

func (r *EntryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM wallet_entries WHERE key = $1`

	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, model.NewStorageError("get", key, err)
	}

	return value, nil
}

func (r *EntryRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO wallet_entries (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return model.NewStorageError("put", key, err)
	}

	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM wallet_entries WHERE key = $1`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return model.NewStorageError("delete", key, err)
	}

	return nil
}
