package sealed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/keyprovider"
	"github.com/dtroode/subspace-wallet/internal/model"
	"github.com/dtroode/subspace-wallet/internal/testutil"
)

var cheapKDF = keyprovider.KDFParams{Time: 1, MemKiB: 64, Threads: 1}

func newTestStorage(t *testing.T, backend model.Storage, secret string) *Storage {
	t.Helper()
	s, err := New(backend, secret, cheapKDF)
	require.NoError(t, err)
	return s
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()
	s := newTestStorage(t, backend, "storage-secret")

	value := []byte(`{"id":"profile","passphrase":"hunter2"}`)
	require.NoError(t, s.Put(ctx, model.StorageKeyUser, value))

	raw, ok := backend.Raw(model.StorageKeyUser)
	require.True(t, ok)
	assert.NotContains(t, string(raw), "hunter2")

	got, err := s.Get(ctx, model.StorageKeyUser)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	require.NoError(t, s.Delete(ctx, model.StorageKeyUser))
	_, err = s.Get(ctx, model.StorageKeyUser)
	assert.ErrorIs(t, err, model.ErrEntryNotFound)
}

func TestStorage_ReopensAfterRestart(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()

	first := newTestStorage(t, backend, "storage-secret")
	for _, key := range []string{model.StorageKeyKeys, model.StorageKeyUser, model.StorageKeyContract} {
		require.NoError(t, first.Put(ctx, key, []byte(`{"entry":"`+key+`"}`)))
	}

	second := newTestStorage(t, backend, "storage-secret")
	for _, key := range []string{model.StorageKeyKeys, model.StorageKeyUser, model.StorageKeyContract} {
		got, err := second.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"entry":"`+key+`"}`, string(got))
	}

	require.NoError(t, second.Put(ctx, model.StorageKeyContract, []byte(`{"entry":"rewritten"}`)))
	got, err := first.Get(ctx, model.StorageKeyContract)
	require.NoError(t, err)
	assert.Equal(t, `{"entry":"rewritten"}`, string(got))
}

func TestStorage_WrongSecret(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()

	require.NoError(t, newTestStorage(t, backend, "one").Put(ctx, model.StorageKeyKeys, []byte(`[]`)))

	_, err := newTestStorage(t, backend, "two").Get(ctx, model.StorageKeyKeys)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStorage)

	var storageErr *model.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "open", storageErr.Op)
}

func TestStorage_PlaintextBackendValue(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()
	require.NoError(t, backend.Put(ctx, model.StorageKeyContract, []byte(`{"version":1}`)))

	_, err := newTestStorage(t, backend, "secret").Get(ctx, model.StorageKeyContract)
	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestStorage_CorruptedEnvelopeDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()
	crafted := `{"version":1,"kdf":"argon2id","kdf_time":0,"kdf_memory_kb":64,"kdf_threads":1,` +
		`"salt":"AAAAAAAAAAAAAAAAAAAAAA==","nonce":"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA","ciphertext":"AA=="}`
	require.NoError(t, backend.Put(ctx, model.StorageKeyKeys, []byte(crafted)))

	s := newTestStorage(t, backend, "secret")
	var err error
	require.NotPanics(t, func() {
		_, err = s.Get(ctx, model.StorageKeyKeys)
	})
	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestStorage_PropagatesBackendErrors(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewMemoryStorage()
	backend.FailOn("put", model.StorageKeyContract)
	backend.FailOn("delete", model.StorageKeyContract)
	s := newTestStorage(t, backend, "secret")

	assert.ErrorIs(t, s.Put(ctx, model.StorageKeyContract, []byte(`{}`)), model.ErrStorage)
	assert.ErrorIs(t, s.Delete(ctx, model.StorageKeyContract), model.ErrStorage)
}

func TestNew_RejectsOutOfRangeKDF(t *testing.T) {
	_, err := New(testutil.NewMemoryStorage(), "secret", keyprovider.KDFParams{Time: 1, MemKiB: 1 << 30, Threads: 1})
	assert.Error(t, err)
}
