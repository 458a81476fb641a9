package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fairyhunter13/shopping-cart/internal/model"
)

// FileStore keeps each document in its own indented JSON file; the name is the file path.
type FileStore struct {
	mu sync.Mutex
}

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON array: %w", model.ErrMalformedRecord, name, err)
	}
	return records, nil
}

// Save replaces the file through a temp file and rename, so readers never see a partial document.
func (s *FileStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(nonNil(records), "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
