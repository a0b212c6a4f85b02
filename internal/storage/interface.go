package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/microhabit/internal/migration"
)

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value store of JSON documents. Values are opaque bytes;
// the Repository owns their shape.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	GetConfigPath() string

	// Get returns ErrNotFound when key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutMany writes every entry or none of them
	PutMany(ctx context.Context, entries map[string][]byte) error
	// Clear removes every key
	Clear(ctx context.Context) error
}

// Versioned is implemented by SQL-backed providers that track a schema version
type Versioned interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}

func schemaVersion(ctx context.Context, runner *migration.Runner) (int, int, error) {
	current, err := runner.GetCurrentVersion(ctx)
	if err != nil {
		return 0, 0, err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}
