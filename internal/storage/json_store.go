package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// JSONStore keeps every key in a single JSON object on disk
type JSONStore struct {
	path string

	mu      sync.Mutex
	entries map[string]json.RawMessage
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]json.RawMessage)
	return s.save(s.entries)
}

func (s *JSONStore) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'microhabit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		return nil, ErrNotLoaded
	}
	value, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone([]byte(value)), nil
}

func (s *JSONStore) Put(ctx context.Context, key string, value []byte) error {
	return s.PutMany(ctx, map[string][]byte{key: value})
}

func (s *JSONStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		return ErrNotLoaded
	}

	next := maps.Clone(s.entries)
	for key, value := range entries {
		if !json.Valid(value) {
			return fmt.Errorf("value for key %q is not valid JSON", key)
		}
		next[key] = json.RawMessage(slices.Clone(value))
	}

	if err := s.save(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

func (s *JSONStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		return ErrNotLoaded
	}
	empty := make(map[string]json.RawMessage)
	if err := s.save(empty); err != nil {
		return err
	}
	s.entries = empty
	return nil
}

// save writes entries to a temp file and renames it over the store
func (s *JSONStore) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func sortedKeys(entries map[string][]byte) []string {
	return slices.Sorted(maps.Keys(entries))
}
