package service

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// KeyChain owns every keypair of the wallet and the decrypted handles of opened keys.
type KeyChain struct {
	mu       sync.RWMutex
	keys     []model.Key
	sessions map[string]crypto.Signer

	provider model.KeyProvider
	storage  model.Storage
	metrics  model.WalletMetrics
	logger   *logger.Logger
}

func NewKeyChain(
	provider model.KeyProvider,
	storage model.Storage,
	metrics model.WalletMetrics,
	logger *logger.Logger,
) *KeyChain {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &KeyChain{
		sessions: make(map[string]crypto.Signer),
		provider: provider,
		storage:  storage,
		metrics:  metrics,
		logger:   logger,
	}
}

// KeyID derives the id a key with the given public material would get.
func (c *KeyChain) KeyID(public string) string {
	return c.provider.Hash(public)
}

// AddKey stores a keypair and returns its id.
//
// With a nil pair (or a pair with both halves empty) a fresh keypair is
// generated from name, email and passphrase. A pair with both halves is
// imported as is. Adding public material that is already present returns
// the existing id.
func (c *KeyChain) AddKey(ctx context.Context, keyType model.KeyType, name, email, passphrase string, pair *model.KeyPair) (id string, err error) {
	defer func() { c.metrics.KeyOperation(model.KeyOpAdd, err != nil) }()

	var material model.KeyPair
	switch {
	case pair == nil || (pair.Public == "" && pair.Private == ""):
		material, err = c.provider.GenerateKeys(name, email, passphrase)
		if err != nil {
			c.logger.Error("KeyChain: failed to generate keys",
				"type", keyType,
				"error", err.Error())
			if errors.Is(err, model.ErrGeneration) {
				return "", err
			}
			return "", fmt.Errorf("%w: %w", model.ErrGeneration, err)
		}
	case pair.Public == "" || pair.Private == "":
		return "", fmt.Errorf("%w: both public and private material are required", model.ErrInvalidImport)
	default:
		material = *pair
	}

	id = c.provider.Hash(material.Public)

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		if c.keys[i].Type != keyType {
			return "", fmt.Errorf("%w: key %s is already held as %s", model.ErrInvalidImport, id, c.keys[i].Type)
		}
		c.logger.Debug("KeyChain: key already present", "id", id)
		return id, nil
	}

	c.keys = append(c.keys, model.Key{
		ID:        id,
		Type:      keyType,
		CreatedAt: model.NowMillis(),
		Public:    material.Public,
		Private:   material.Private,
	})

	if err := c.save(ctx); err != nil {
		return "", fmt.Errorf("failed to save key chain: %w", err)
	}

	c.logger.Info("KeyChain: key added", "id", id, "type", keyType)

	return id, nil
}

// OpenKey decrypts the private material of key id and records the handle in
// the session map. The returned key carries the handle.
func (c *KeyChain) OpenKey(_ context.Context, id, passphrase string) (key model.Key, err error) {
	defer func() { c.metrics.KeyOperation(model.KeyOpOpen, err != nil) }()

	key, err = c.Key(id)
	if err != nil {
		return model.Key{}, err
	}

	handle, err := c.provider.OpenPrivateKey(key.Private, passphrase)
	if err != nil {
		c.logger.Warn("KeyChain: failed to open key", "id", id)
		if errors.Is(err, model.ErrWrongPassphrase) {
			return model.Key{}, err
		}
		return model.Key{}, fmt.Errorf("%w: %w", model.ErrWrongPassphrase, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) < 0 {
		return model.Key{}, fmt.Errorf("key %s: %w", id, model.ErrNotFound)
	}
	c.sessions[id] = handle

	key.Handle = handle
	return key, nil
}

// ImportKey adds an existing keypair only after its private material opens
// under passphrase, so a rejected import leaves the chain untouched. Public
// material already held under another type is rejected. The returned key
// carries the opened handle.
func (c *KeyChain) ImportKey(ctx context.Context, keyType model.KeyType, pair model.KeyPair, passphrase string) (key model.Key, err error) {
	defer func() { c.metrics.KeyOperation(model.KeyOpAdd, err != nil) }()

	if pair.Public == "" || pair.Private == "" {
		return model.Key{}, fmt.Errorf("%w: both public and private material are required", model.ErrInvalidImport)
	}

	handle, err := c.provider.OpenPrivateKey(pair.Private, passphrase)
	if err != nil {
		c.logger.Warn("KeyChain: rejected key import", "type", keyType)
		if errors.Is(err, model.ErrWrongPassphrase) {
			return model.Key{}, err
		}
		return model.Key{}, fmt.Errorf("%w: %w", model.ErrWrongPassphrase, err)
	}

	id := c.provider.Hash(pair.Public)

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		if c.keys[i].Type != keyType {
			return model.Key{}, fmt.Errorf("%w: key %s is already held as %s", model.ErrInvalidImport, id, c.keys[i].Type)
		}
		c.sessions[id] = handle
		key = c.keys[i]
		key.Handle = handle
		return key, nil
	}

	key = model.Key{
		ID:        id,
		Type:      keyType,
		CreatedAt: model.NowMillis(),
		Public:    pair.Public,
		Private:   pair.Private,
	}
	c.keys = append(c.keys, key)

	if err := c.save(ctx); err != nil {
		return model.Key{}, fmt.Errorf("failed to save key chain: %w", err)
	}
	c.sessions[id] = handle

	c.logger.Info("KeyChain: key imported", "id", id, "type", keyType)

	key.Handle = handle
	return key, nil
}

// Key returns a copy of key id. Handle is set when the key was opened.
func (c *KeyChain) Key(id string) (model.Key, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return model.Key{}, fmt.Errorf("key %s: %w", id, model.ErrNotFound)
	}

	key := c.keys[i]
	key.Handle = c.sessions[id]
	return key, nil
}

// Keys returns copies of all keys in insertion order, without handles.
func (c *KeyChain) Keys() []model.Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.keys)
}

// RemoveKey deletes key id and its session. Removing an absent key is a no-op.
func (c *KeyChain) RemoveKey(ctx context.Context, id string) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	defer func() { c.metrics.KeyOperation(model.KeyOpRemove, err != nil) }()

	c.keys = slices.Delete(c.keys, i, i+1)
	delete(c.sessions, id)

	if err := c.save(ctx); err != nil {
		return fmt.Errorf("failed to save key chain: %w", err)
	}

	c.logger.Info("KeyChain: key removed", "id", id)

	return nil
}

// Save persists the whole collection.
func (c *KeyChain) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx)
}

// Load replaces the collection with the persisted one. When nothing is
// persisted the collection is left untouched.
func (c *KeyChain) Load(ctx context.Context) error {
	var keys []model.Key
	found, err := getJSON(ctx, c.storage, model.StorageKeyKeys, &keys)
	if err != nil {
		c.logger.Error("KeyChain: failed to load keys", "error", err.Error())
		return fmt.Errorf("failed to load key chain: %w", err)
	}
	if !found {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys = keys
	c.sessions = make(map[string]crypto.Signer)

	c.logger.Debug("KeyChain: keys loaded", "count", len(keys))

	return nil
}

// Clear drops every key and session and deletes the persisted collection.
func (c *KeyChain) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys = nil
	c.sessions = make(map[string]crypto.Signer)

	if err := deleteEntry(ctx, c.storage, model.StorageKeyKeys); err != nil {
		return fmt.Errorf("failed to clear key chain: %w", err)
	}
	return nil
}

// save must be called with mu held.
func (c *KeyChain) save(ctx context.Context) error {
	keys := c.keys
	if keys == nil {
		keys = []model.Key{}
	}
	return putJSON(ctx, c.storage, model.StorageKeyKeys, keys)
}

func (c *KeyChain) indexOf(id string) int {
	return slices.IndexFunc(c.keys, func(k model.Key) bool { return k.ID == id })
}
