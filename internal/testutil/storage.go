package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/dtroode/subspace-wallet/internal/model"
)

var _ model.Storage = (*MemoryStorage)(nil)

var errInjected = errors.New("injected failure")

// MemoryStorage is an in-process model.Storage for tests.
// Setting FailOn makes the named operation ("get", "put" or "delete") return
// a model.StorageError for the given key.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
	failOn  map[string]string
	puts    int
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string][]byte),
		failOn:  make(map[string]string),
	}
}

// FailOn makes op on key fail until Reset is called.
func (s *MemoryStorage) FailOn(op, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = key
}

// Reset clears injected failures.
func (s *MemoryStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = make(map[string]string)
}

// Raw returns the stored value without going through Get.
func (s *MemoryStorage) Raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Puts returns how many successful Put calls were made.
func (s *MemoryStorage) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("get", key); err != nil {
		return nil, err
	}
	v, ok := s.entries[key]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStorage) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("put", key); err != nil {
		return err
	}
	s.entries[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("delete", key); err != nil {
		return err
	}
	delete(s.entries, key)
	return nil
}

func (s *MemoryStorage) injected(op, key string) error {
	if k, ok := s.failOn[op]; ok && k == key {
		return model.NewStorageError(op, key, errInjected)
	}
	return nil
}

