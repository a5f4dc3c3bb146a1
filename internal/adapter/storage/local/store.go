// Package local stores media objects on the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// Store keeps each bucket as a directory under root.
type Store struct {
	root string
	log  *slog.Logger
}

// NewStore creates the root directory if needed and returns a Store.
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("local store: create root: %w", err)
	}
	return &Store{root: root, log: logger.With("adapter", "local_store")}, nil
}

// Put writes body to bucket/key, replacing any existing object.
// The file is written to a temporary name first so readers never see a partial image.
func (s *Store) Put(ctx context.Context, bucket, key string, body io.Reader, _ string) error {
	path, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("local store: create bucket: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("local store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("local store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("local store: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("local store: rename: %w", err)
	}

	s.log.DebugContext(ctx, "object stored", slog.String("bucket", bucket), slog.String("key", key))
	return nil
}

// Open returns the object at bucket/key or domain.ErrNotFound.
func (s *Store) Open(ctx context.Context, bucket, key string) (*domain.MediaObject, error) {
	path, err := s.path(bucket, key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("local store: open: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("local store: stat: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &domain.MediaObject{
		Body:        f,
		ContentType: contentType,
		Size:        info.Size(),
		ModifiedAt:  info.ModTime(),
	}, nil
}

// Delete removes bucket/key. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	path, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local store: delete: %w", err)
	}
	s.log.DebugContext(ctx, "object deleted", slog.String("bucket", bucket), slog.String("key", key))
	return nil
}

// Ping reports whether the root directory is still reachable.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("local store: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local store: %s is not a directory", s.root)
	}
	return nil
}

func (s *Store) path(bucket, key string) (string, error) {
	if !validName(bucket) || !validName(key) {
		return "", domain.NewValidationError("path", "invalid object path")
	}
	return filepath.Join(s.root, bucket, key), nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}
