package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/subspace-wallet/internal/model"
)

// putJSON encodes v and writes it under key.
func putJSON(ctx context.Context, storage model.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := storage.Put(ctx, key, data); err != nil {
		return asStorageError("put", key, err)
	}
	return nil
}

// getJSON reads key into v. It reports false when nothing is stored under key.
func getJSON(ctx context.Context, storage model.Storage, key string, v any) (bool, error) {
	data, err := storage.Get(ctx, key)
	if errors.Is(err, model.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, asStorageError("get", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func deleteEntry(ctx context.Context, storage model.Storage, key string) error {
	if err := storage.Delete(ctx, key); err != nil {
		return asStorageError("delete", key, err)
	}
	return nil
}

func asStorageError(op, key string, err error) error {
	if errors.Is(err, model.ErrStorage) {
		return err
	}
	return model.NewStorageError(op, key, err)
}
