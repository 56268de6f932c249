package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/model"
)

func openMemory(t *testing.T) *Repository {
	t.Helper()
	r, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := openMemory(t)

	_, err := r.Get(ctx, model.StorageKeyKeys)
	assert.ErrorIs(t, err, model.ErrEntryNotFound)

	require.NoError(t, r.Put(ctx, model.StorageKeyKeys, []byte(`[]`)))
	got, err := r.Get(ctx, model.StorageKeyKeys)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, r.Put(ctx, model.StorageKeyKeys, []byte(`[{"id":"a"}]`)))
	got, err = r.Get(ctx, model.StorageKeyKeys)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)

	require.NoError(t, r.Delete(ctx, model.StorageKeyKeys))
	_, err = r.Get(ctx, model.StorageKeyKeys)
	assert.ErrorIs(t, err, model.ErrEntryNotFound)

	// deleting a missing entry is not an error
	require.NoError(t, r.Delete(ctx, model.StorageKeyKeys))
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallet.db")

	r, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, r.Put(ctx, model.StorageKeyUser, []byte(`{"id":"p"}`)))
	require.NoError(t, r.Close())

	r, err = Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Get(ctx, model.StorageKeyUser)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"p"}`), got)
}

func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
		call  func(r *Repository) error
		op    string
	}{
		{
			name: "get",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM wallet_entries WHERE key = ?`)).
					WithArgs("contract").
					WillReturnError(boom)
			},
			call: func(r *Repository) error {
				_, err := r.Get(ctx, "contract")
				return err
			},
			op: "get",
		},
		{
			name: "put",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO wallet_entries`).
					WithArgs("contract", []byte(`{}`), int64(1_700_000_000_000)).
					WillReturnError(boom)
			},
			call: func(r *Repository) error {
				return r.Put(ctx, "contract", []byte(`{}`))
			},
			op: "put",
		},
		{
			name: "delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM wallet_entries WHERE key = ?`)).
					WithArgs("contract").
					WillReturnError(boom)
			},
			call: func(r *Repository) error {
				return r.Delete(ctx, "contract")
			},
			op: "delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)
			r := New(db)
			r.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

			err = tt.call(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrStorage)
			assert.ErrorIs(t, err, boom)

			var storageErr *model.StorageError
			require.ErrorAs(t, err, &storageErr)
			assert.Equal(t, tt.op, storageErr.Op)
			assert.Equal(t, "contract", storageErr.Key)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM wallet_entries`).
		WithArgs("user").
		WillReturnError(sql.ErrNoRows)

	_, err = New(db).Get(context.Background(), "user")
	assert.ErrorIs(t, err, model.ErrEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
