package model

import "context"

// Names of the storage entries used by the wallet.
const (
	StorageKeyKeys     = "keys"
	StorageKeyUser     = "user"
	StorageKeyContract = "contract"
)

// Storage is a key-value persistence backend. Values are UTF-8 JSON documents.
type Storage interface {
	// Get returns the value stored under key or ErrEntryNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
