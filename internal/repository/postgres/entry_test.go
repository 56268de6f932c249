package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/model"
)

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

type fakeDB struct {
	rows    map[string][]byte
	err     error
	queries []string
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return fakeRow{err: f.err}
	}
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	key := args[0].(string)
	if len(args) == 2 {
		f.rows[key] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	delete(f.rows, key)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func TestNewEntryRepository(t *testing.T) {
	db := &Connection{}
	repo := NewEntryRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestEntryRepository_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{rows: map[string][]byte{}}
	repo := &EntryRepository{db: db}

	_, err := repo.Get(ctx, model.StorageKeyUser)
	assert.ErrorIs(t, err, model.ErrEntryNotFound)

	require.NoError(t, repo.Put(ctx, model.StorageKeyUser, []byte(`{"id":"x"}`)))
	got, err := repo.Get(ctx, model.StorageKeyUser)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"x"}`), got)

	require.NoError(t, repo.Delete(ctx, model.StorageKeyUser))
	_, err = repo.Get(ctx, model.StorageKeyUser)
	assert.ErrorIs(t, err, model.ErrEntryNotFound)

	require.Len(t, db.queries, 5)
	assert.Contains(t, db.queries[1], "ON CONFLICT (key) DO UPDATE")
}

func TestEntryRepository_Errors(t *testing.T) {
	ctx := context.Background()
	connErr := errors.New("connection reset")
	repo := &EntryRepository{db: &fakeDB{rows: map[string][]byte{}, err: connErr}}

	tests := []struct {
		name string
		op   string
		call func() error
	}{
		{name: "get", op: "get", call: func() error { _, err := repo.Get(ctx, "keys"); return err }},
		{name: "put", op: "put", call: func() error { return repo.Put(ctx, "keys", []byte(`[]`)) }},
		{name: "delete", op: "delete", call: func() error { return repo.Delete(ctx, "keys") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrStorage)
			assert.ErrorIs(t, err, connErr)

			var storageErr *model.StorageError
			require.ErrorAs(t, err, &storageErr)
			assert.Equal(t, tt.op, storageErr.Op)
		})
	}
}
