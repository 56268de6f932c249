package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation targets an absent key, profile or contract.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a profile or contract while one is loaded.
	ErrAlreadyExists = errors.New("already exists")
	// ErrWrongPassphrase is returned when private key material cannot be decrypted.
	ErrWrongPassphrase = errors.New("wrong passphrase")
	// ErrGeneration is returned when a keypair cannot be produced.
	ErrGeneration = errors.New("key generation failed")
	// ErrInvalidImport is returned when only one half of a keypair is supplied.
	ErrInvalidImport = errors.New("invalid key import")
	// ErrInvalidOptions is returned when required options are missing.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrStorage matches every StorageError.
	ErrStorage = errors.New("storage failure")
	// ErrEntryNotFound is returned by Storage.Get for a missing key.
	ErrEntryNotFound = errors.New("storage entry not found")
)

// StorageError wraps a failure of the storage backend.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError wraps err as a StorageError for operation op on key.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
