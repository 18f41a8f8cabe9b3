package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FSStore keeps content on the local filesystem under a base
// directory. Used for development and tests; production deployments
// run on MinIO.
type FSStore struct {
	baseDir string
}

func NewFSStore(baseDir string) (*FSStore, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

func (s *FSStore) Save(ctx context.Context, ownerID uuid.UUID, data []byte) (string, error) {
	locator := NewLocator(ownerID)
	path := filepath.Join(s.baseDir, locator)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return locator, nil
}

func (s *FSStore) Open(ctx context.Context, locator string, variant Variant) (io.ReadCloser, error) {
	path := filepath.Join(s.baseDir, ObjectKey(locator, variant))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
		}
		return nil, err
	}
	return f, nil
}

func (s *FSStore) Exists(ctx context.Context, locator string, variant Variant) (bool, error) {
	path := filepath.Join(s.baseDir, ObjectKey(locator, variant))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ Store = (*FSStore)(nil)
