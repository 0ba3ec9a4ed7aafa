// Package local stores uploads on the local filesystem. Files are served by
// the router under /uploads.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/naatacademy/naat-api/internal/storage"
)

// Store keeps files in a single directory.
type Store struct {
	dir     string
	baseURL string
}

// New creates the upload directory if needed. baseURL is the public URL the
// directory is served from, e.g. https://api.example.com/uploads.
func New(dir, baseURL string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes content to a temp file and renames it into place, so readers
// never see a partial file.
func (s *Store) Upload(ctx context.Context, key string, content io.Reader, contentType string) error {
	if !storage.ValidKey(key) {
		return storage.ErrInvalidKey
	}

	tmpFile, err := os.CreateTemp(s.dir, "upload_tmp_")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := io.Copy(tmpFile, content); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}

	return os.Rename(tmpPath, s.Path(key))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if !storage.ValidKey(key) {
		return storage.ErrInvalidKey
	}
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

// Path returns the file path of key on disk.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

var _ storage.Store = (*Store)(nil)
