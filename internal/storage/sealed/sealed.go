// Package sealed encrypts wallet entries before they reach a storage backend.
package sealed

import (
	"context"
	"fmt"

	"github.com/dtroode/subspace-wallet/internal/keyprovider"
	"github.com/dtroode/subspace-wallet/internal/model"
)

var _ model.Storage = (*Storage)(nil)

// Storage seals every value with a passphrase envelope and opens it on read.
// The envelope key is derived once per Storage, not once per write.
type Storage struct {
	next   model.Storage
	sealer *keyprovider.Sealer
}

func New(next model.Storage, secret string, kdf keyprovider.KDFParams) (*Storage, error) {
	sealer, err := keyprovider.NewSealer(kdf, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealer: %w", err)
	}
	return &Storage{
		next:   next,
		sealer: sealer,
	}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	plain, err := s.sealer.Open(data)
	if err != nil {
		return nil, model.NewStorageError("open", key, err)
	}
	return plain, nil
}

func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	data, err := s.sealer.Seal(value)
	if err != nil {
		return model.NewStorageError("seal", key, err)
	}
	return s.next.Put(ctx, key, data)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}
