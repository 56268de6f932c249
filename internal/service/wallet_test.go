package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/mocks"
	"github.com/dtroode/subspace-wallet/internal/model"
	"github.com/dtroode/subspace-wallet/internal/testutil"
)

func newTestWallet(t *testing.T, storage model.Storage, tokens model.TokenManager) *Wallet {
	t.Helper()
	if tokens == nil {
		tokens = mocks.NewTokenManager(t)
	}
	return NewWallet(storage, newTestProvider(), tokens, nil, testutil.MakeNoopLogger())
}

func TestWallet_InitBootstrapsProfile(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	w := newTestWallet(t, storage, nil)

	view, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Name)
	assert.NotNil(t, view.Handle)

	_, err = w.PublicContract()
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, ok := storage.Raw(model.StorageKeyUser)
	assert.True(t, ok)
	_, ok = storage.Raw(model.StorageKeyKeys)
	assert.True(t, ok)
}

func TestWallet_InitLoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()

	first := newTestWallet(t, storage, nil)
	created, err := first.Init(ctx, testProfileOptions)
	require.NoError(t, err)
	_, err = first.CreateContract(ctx, testContractOptions)
	require.NoError(t, err)
	require.NoError(t, first.AddRecord(ctx, "r1", 100))
	contract, err := first.PrivateContract()
	require.NoError(t, err)

	second := newTestWallet(t, storage, nil)
	loaded, err := second.Init(ctx, model.ProfileOptions{Name: "ignored", Email: "ignored@example.com", Passphrase: "x"})
	require.NoError(t, err)
	assert.Equal(t, created, loaded)

	reloaded, err := second.PrivateContract()
	require.NoError(t, err)
	assert.Equal(t, contract, reloaded)
	assert.Len(t, second.KeyChain().Keys(), 2)
}

func TestWallet_InitRequiresValidOptionsWhenEmpty(t *testing.T) {
	w := newTestWallet(t, testutil.NewMemoryStorage(), nil)

	_, err := w.Init(context.Background(), model.ProfileOptions{})
	assert.ErrorIs(t, err, model.ErrInvalidOptions)
}

func TestWallet_InitStorageFailure(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	first := newTestWallet(t, storage, nil)
	_, err := first.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	storage.FailOn("get", model.StorageKeyContract)
	_, err = newTestWallet(t, storage, nil).Init(ctx, testProfileOptions)
	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestWallet_CreateProfileTwice(t *testing.T) {
	ctx := context.Background()
	w := newTestWallet(t, testutil.NewMemoryStorage(), nil)

	_, err := w.CreateProfile(ctx, testProfileOptions)
	require.NoError(t, err)
	_, err = w.CreateProfile(ctx, testProfileOptions)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestWallet_RecoveryPhraseRestoresProfile(t *testing.T) {
	ctx := context.Background()
	w := newTestWallet(t, testutil.NewMemoryStorage(), nil)

	_, err := w.RecoveryPhrase()
	assert.ErrorIs(t, err, model.ErrNotFound)

	original, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	phrase, err := w.RecoveryPhrase()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), 24)

	restored := newTestWallet(t, testutil.NewMemoryStorage(), nil)
	opts := testProfileOptions
	opts.Passphrase = "new passphrase"
	view, err := restored.RestoreProfile(ctx, opts, phrase)
	require.NoError(t, err)
	assert.Equal(t, original.ID, view.ID)
	assert.Equal(t, original.PublicKey, view.PublicKey)

	_, err = restored.RestoreProfile(ctx, opts, phrase)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = newTestWallet(t, testutil.NewMemoryStorage(), nil).RestoreProfile(ctx, opts, "not a phrase")
	assert.ErrorIs(t, err, model.ErrInvalidImport)
}

func TestWallet_Unlock(t *testing.T) {
	ctx := context.Background()
	tokens := mocks.NewTokenManager(t)
	w := newTestWallet(t, testutil.NewMemoryStorage(), tokens)

	_, err := w.Unlock(ctx, "anything")
	assert.ErrorIs(t, err, model.ErrNotFound)

	view, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	_, err = w.Unlock(ctx, "wrong")
	assert.ErrorIs(t, err, model.ErrWrongPassphrase)

	tokens.On("GenerateAccessToken", view.ID).Return("token", int64(1234), nil).Once()
	session, err := w.Unlock(ctx, testProfileOptions.Passphrase)
	require.NoError(t, err)
	assert.Equal(t, model.Session{ProfileID: view.ID, AccessToken: "token", ExpiresAt: 1234}, session)

	tokenErr := errors.New("signing failed")
	tokens.On("GenerateAccessToken", view.ID).Return("", int64(0), tokenErr).Once()
	_, err = w.Unlock(ctx, testProfileOptions.Passphrase)
	assert.ErrorIs(t, err, tokenErr)
}

func TestWallet_Authorize(t *testing.T) {
	ctx := context.Background()
	tokens := mocks.NewTokenManager(t)
	w := newTestWallet(t, testutil.NewMemoryStorage(), tokens)

	view, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		parsed   string
		parseErr error
		wantErr  error
	}{
		{name: "current profile", token: "good", parsed: view.ID},
		{name: "other profile", token: "stale", parsed: "someone-else", wantErr: model.ErrTokenMismatch},
		{name: "expired", token: "old", parseErr: model.ErrTokenExpired, wantErr: model.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens.On("ParseAccessToken", tt.token).Return(tt.parsed, tt.parseErr).Once()

			id, err := w.Authorize(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.ID, id)
		})
	}
}

func TestWallet_RecordChanges(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	metrics := mocks.NewWalletMetrics(t)
	metrics.On("KeyOperation", mock.Anything, mock.Anything).Return()

	w := NewWallet(storage, newTestProvider(), mocks.NewTokenManager(t), metrics, testutil.MakeNoopLogger())
	_, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	_, err = w.ApplyRecordChange(ctx, model.RecordChange{Op: model.RecordOpAdd, ID: "r1", Size: 100})
	assert.ErrorIs(t, err, model.ErrNotFound)

	metrics.On("ContractUsage", int64(0), 0).Return().Once()
	_, err = w.CreateContract(ctx, testContractOptions)
	require.NoError(t, err)

	metrics.On("RecordOperation", model.RecordOpAdd).Return().Once()
	metrics.On("ContractUsage", int64(300), 1).Return().Once()
	state, err := w.ApplyRecordChange(ctx, model.RecordChange{Op: model.RecordOpAdd, ID: "r1", Size: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(300), state.SpaceUsed)

	metrics.On("RecordOperation", model.RecordOpUpdate).Return().Once()
	metrics.On("ContractUsage", int64(240), 1).Return().Once()
	require.NoError(t, w.UpdateRecord(ctx, "r1", -20))

	metrics.On("RecordOperation", model.RecordOpRemove).Return().Once()
	metrics.On("ContractUsage", int64(-60), 0).Return().Once()
	require.NoError(t, w.RemoveRecord(ctx, "r1", 100))

	_, err = w.ApplyRecordChange(ctx, model.RecordChange{Op: "rename", ID: "r1"})
	assert.ErrorIs(t, err, model.ErrInvalidOptions)
}

func TestWallet_StoreContract(t *testing.T) {
	ctx := context.Background()
	w := newTestWallet(t, testutil.NewMemoryStorage(), nil)
	_, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)

	pair, err := newTestProvider().GenerateKeys("", "", "pw")
	require.NoError(t, err)

	public, err := w.StoreContract(ctx, model.ContractBundle{
		Options: model.ContractOptions{Passphrase: "pw", ReplicationFactor: 2, SpaceReserved: 100},
		Key:     model.Key{Public: pair.Public, Private: pair.Private},
	})
	require.NoError(t, err)

	got, err := w.PublicContract()
	require.NoError(t, err)
	assert.Equal(t, public, got)

	require.NoError(t, w.AddRecord(ctx, "r", 5))
	private, err := w.PrivateContract()
	require.NoError(t, err)
	assert.Equal(t, int64(10), private.SpaceUsed)
}

func TestWallet_Clear(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	w := newTestWallet(t, storage, nil)

	first, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)
	_, err = w.CreateContract(ctx, testContractOptions)
	require.NoError(t, err)

	require.NoError(t, w.Clear(ctx))

	_, err = w.PrivateContract()
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = w.Profile()
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Empty(t, w.KeyChain().Keys())
	for _, key := range []string{model.StorageKeyKeys, model.StorageKeyUser, model.StorageKeyContract} {
		_, ok := storage.Raw(key)
		assert.False(t, ok, key)
	}

	// clearing an empty wallet only drops the key chain entry
	require.NoError(t, w.Clear(ctx))

	second, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestWallet_ClearStorageFailure(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	w := newTestWallet(t, storage, nil)

	_, err := w.Init(ctx, testProfileOptions)
	require.NoError(t, err)
	_, err = w.CreateContract(ctx, testContractOptions)
	require.NoError(t, err)

	storage.FailOn("delete", model.StorageKeyContract)
	err = w.Clear(ctx)
	assert.ErrorIs(t, err, model.ErrStorage)

	// the key chain entry survives a failed clear
	_, ok := storage.Raw(model.StorageKeyKeys)
	assert.True(t, ok)
}
