// Package store persists catalog and cart documents. A document is an ordered
// list of JSON records written and read as a whole.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fairyhunter13/shopping-cart/internal/config"
)

// ErrNotFound is returned by Load when the named document does not exist.
var ErrNotFound = errors.New("document not found")

// Store loads and saves whole documents by name.
type Store interface {
	Load(ctx context.Context, name string) ([]json.RawMessage, error)
	Save(ctx context.Context, name string, records []json.RawMessage) error
	Close() error
}

// Open returns the backend selected by cfg.StoreBackend.
func Open(cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendJSON, "":
		return NewFileStore(), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func nonNil(records []json.RawMessage) []json.RawMessage {
	if records == nil {
		return []json.RawMessage{}
	}
	return records
}
