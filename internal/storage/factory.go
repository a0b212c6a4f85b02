package storage

import (
	"path/filepath"
	"strings"
)

// NewProvider picks a backend for location: a PostgreSQL connection string,
// a .json file, or otherwise a SQLite database file
func NewProvider(location string) (Provider, error) {
	switch {
	case IsPostgresConnString(location):
		if err := ValidateConnString(location); err != nil {
			return nil, err
		}
		return NewPostgresStore(location), nil
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return NewJSONStore(location), nil
	default:
		return NewSQLiteStore(location), nil
	}
}
