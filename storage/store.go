// Package storage provides the on-disk key-value store consumed by plugin
// business logic (caching, watch history and the like) and the JSON-backed
// settings document read by the framework. Neither is part of the dispatch
// core; both follow the flush/close lifecycle the host expects of plugin
// persistence.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
)

// Store is a named, key-unique on-disk mapping. All mutation happens in
// memory; Flush writes the mapping atomically, Close flushes when dirty.
type Store struct {
	path  string
	data  map[string]any
	dirty bool
}

// storeFileName derives the on-disk file name for a store name. The name
// is hashed so store names are not restricted to filesystem-safe strings.
func storeFileName(name string) string {
	return fmt.Sprintf("%016x.cbor", xxhash.Sum64String(name))
}

// Open opens the named store under dir, creating dir as needed. A missing
// store file opens as an empty store.
func Open(dir, name string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store := &Store{
		path: filepath.Join(dir, storeFileName(name)),
		data: make(map[string]any),
	}

	raw, err := os.ReadFile(store.path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := cbor.Unmarshal(raw, &store.data); err != nil {
		return nil, fmt.Errorf("failed to decode store file %s: %w", store.path, err)
	}
	return store, nil
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (any, bool) {
	value, ok := s.data[key]
	return value, ok
}

// Set stores value under key.
func (s *Store) Set(key string, value any) {
	s.data[key] = value
	s.dirty = true
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.dirty = true
	}
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	return len(s.data)
}

// Keys returns all stored keys in unspecified order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys
}

// Flush writes the mapping to disk. The write goes through a temp file and
// rename so a crash mid-write never corrupts the previous state.
func (s *Store) Flush() error {
	raw, err := cbor.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	s.dirty = false
	return nil
}

// Close flushes the store if it has unsaved changes.
func (s *Store) Close() error {
	if s.dirty {
		return s.Flush()
	}
	return nil
}

// Purge empties the store and removes its file.
func (s *Store) Purge() error {
	s.data = make(map[string]any)
	s.dirty = false

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove store file: %w", err)
	}
	return nil
}
