package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// PublicURL returns the absolute URL an uploaded image is served from.
func (s *Service) PublicURL(bucket domain.MediaBucket, path string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/media/" + bucket.String() + "/" + path
}

// Open returns a stored image. Paths that Upload could not have produced
// are reported as domain.ErrNotFound.
func (s *Service) Open(ctx context.Context, bucket domain.MediaBucket, path string) (*domain.MediaObject, error) {
	if !bucket.IsValid() || !validPath(path) {
		return nil, domain.ErrNotFound
	}

	obj, err := s.store.Open(ctx, bucket.String(), path)
	if err != nil {
		return nil, fmt.Errorf("media.Open: %w", err)
	}
	return obj, nil
}

func validPath(path string) bool {
	ext := filepath.Ext(path)
	switch ext {
	case ".jpg", ".png":
	default:
		return false
	}
	_, err := uuid.Parse(strings.TrimSuffix(path, ext))
	return err == nil
}
