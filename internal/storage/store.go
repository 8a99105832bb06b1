// Package storage provides the file-backed record store every repository
// builds on: one JSON array per entity type, whole-collection load and
// replace as the only primitives.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrCorrupted means the data file exists but does not contain a JSON
	// array of the expected record type.
	ErrCorrupted = errors.New("data file is corrupted")

	// ErrWriteFailed means the replace could not be committed to disk.
	ErrWriteFailed = errors.New("data file write failed")
)

// Store persists a homogeneous collection of records in a single file.
// The mutex serializes every load-modify-replace cycle; without it two
// concurrent mutations race and the last writer silently drops the other's
// changes.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path, resolved once at construction.
func (s *Store[T]) Path() string { return s.path }

// LoadAll reads the persisted collection. A missing or empty file is an
// empty collection, never an error.
func (s *Store[T]) LoadAll() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// ReplaceAll writes items as the new and only content of the backing file.
// This is the sole write primitive; there is no append or partial update.
func (s *Store[T]) ReplaceAll(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(items)
}

// Mutate runs fn on the loaded collection and replaces the file with fn's
// result, holding the store lock for the whole cycle. If fn returns an
// error nothing is written.
func (s *Store[T]) Mutate(fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked()
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return s.replaceLocked(updated)
}

func (s *Store[T]) loadLocked() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", s.path, ErrCorrupted, err)
	}
	return items, nil
}

func (s *Store[T]) replaceLocked(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w: %w", s.path, ErrWriteFailed, err)
	}

	// Write to a temp file in the same directory and rename it over the
	// target so readers never observe a partially written collection.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w: %w", dir, ErrWriteFailed, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w: %w", tmp.Name(), ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w: %w", tmp.Name(), ErrWriteFailed, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w: %w", s.path, ErrWriteFailed, err)
	}
	return nil
}
