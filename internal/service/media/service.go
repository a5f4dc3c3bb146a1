// Package media validates, downsizes and stores uploaded images.
package media

import (
	"context"
	"io"
	"log/slog"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type objectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Open(ctx context.Context, bucket, key string) (*domain.MediaObject, error)
}

// DefaultMaxPixels bounds the decoded size of an upload when Config.MaxPixels is unset.
const DefaultMaxPixels = 40_000_000

// Config holds upload limits and the public address media is served from.
type Config struct {
	PublicBaseURL  string
	MaxUploadBytes int64
	MaxDimension   int
	// MaxPixels caps width*height as declared by the image header.
	MaxPixels int64
}

// Service implements media operations.
type Service struct {
	store objectStore
	cfg   Config
	log   *slog.Logger
}

// NewService creates a new media service.
func NewService(log *slog.Logger, store objectStore, cfg Config) *Service {
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = DefaultMaxPixels
	}
	return &Service{
		store: store,
		cfg:   cfg,
		log:   log.With("service", "media"),
	}
}
