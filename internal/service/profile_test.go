package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/model"
	"github.com/dtroode/subspace-wallet/internal/testutil"
)

func newTestProfile(t *testing.T, storage model.Storage) (*Profile, *KeyChain) {
	t.Helper()
	chain := newTestChain(t, storage)
	return NewProfile(chain, storage, testutil.MakeNoopLogger()), chain
}

func TestProfile_Create(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	profile, chain := newTestProfile(t, storage)

	view, err := profile.Create(ctx, testProfileOptions)
	require.NoError(t, err)

	assert.Equal(t, testProfileOptions.Name, view.Name)
	assert.Equal(t, testProfileOptions.Email, view.Email)
	assert.NotEmpty(t, view.PublicKey)
	assert.NotNil(t, view.Handle)
	assert.Equal(t, chain.KeyID(view.PublicKey), view.ID)

	key, err := chain.Key(view.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KeyTypeProfile, key.Type)

	raw, ok := storage.Raw(model.StorageKeyUser)
	require.True(t, ok)
	var user map[string]any
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, view.ID, user["id"])
	assert.Equal(t, "alice", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "correct horse", user["passphrase"])
	assert.Contains(t, user, "createdAt")
}

func TestProfile_CreateErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    model.ProfileOptions
		wantErr error
	}{
		{name: "missing name", opts: model.ProfileOptions{Email: "a@b", Passphrase: "pw"}, wantErr: model.ErrInvalidOptions},
		{name: "missing email", opts: model.ProfileOptions{Name: "a", Passphrase: "pw"}, wantErr: model.ErrInvalidOptions},
		{name: "missing passphrase", opts: model.ProfileOptions{Name: "a", Email: "a@b"}, wantErr: model.ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := testutil.NewMemoryStorage()
			profile, chain := newTestProfile(t, storage)

			_, err := profile.Create(ctx, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, profile.Exists())
			assert.Empty(t, chain.Keys())
		})
	}

	t.Run("twice", func(t *testing.T) {
		profile, chain := newTestProfile(t, testutil.NewMemoryStorage())

		_, err := profile.Create(ctx, testProfileOptions)
		require.NoError(t, err)
		_, err = profile.Create(ctx, testProfileOptions)
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
		assert.Len(t, chain.Keys(), 1)
	})
}

func TestProfile_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	profile, _ := newTestProfile(t, storage)

	created, err := profile.Create(ctx, testProfileOptions)
	require.NoError(t, err)

	reloaded, chain := newTestProfile(t, storage)
	_, err = reloaded.Load(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound, "profile key is unknown until the key chain is loaded")

	require.NoError(t, chain.Load(ctx))
	found, err := reloaded.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)

	view, err := reloaded.View()
	require.NoError(t, err)
	assert.Equal(t, created, view)
}

func TestProfile_LoadNothingPersisted(t *testing.T) {
	profile, _ := newTestProfile(t, testutil.NewMemoryStorage())

	found, err := profile.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	_, err = profile.View()
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProfile_Restore(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider()
	pair, err := provider.GenerateKeys("", "", testProfileOptions.Passphrase)
	require.NoError(t, err)

	profile, _ := newTestProfile(t, testutil.NewMemoryStorage())

	_, err = profile.Restore(ctx, testProfileOptions, model.KeyPair{Public: pair.Public})
	assert.ErrorIs(t, err, model.ErrInvalidImport)

	view, err := profile.Restore(ctx, testProfileOptions, pair)
	require.NoError(t, err)
	assert.Equal(t, provider.Hash(pair.Public), view.ID)
	assert.Equal(t, pair.Public, view.PublicKey)
}

func TestProfile_Clear(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewMemoryStorage()
	profile, chain := newTestProfile(t, storage)

	err := profile.Clear(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	view, err := profile.Create(ctx, testProfileOptions)
	require.NoError(t, err)

	require.NoError(t, profile.Clear(ctx))
	assert.False(t, profile.Exists())

	_, err = profile.View()
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = chain.Key(view.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, ok := storage.Raw(model.StorageKeyUser)
	assert.False(t, ok)

	_, err = profile.Create(ctx, testProfileOptions)
	assert.NoError(t, err)
}
