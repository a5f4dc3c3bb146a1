package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/cache"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/storage/gridfs"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/storage/local"
	"github.com/heartmarshall/mycoforage-backend/internal/config"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const (
	cacheConnectTimeout = 5 * time.Second
	cacheKeyPrefix      = "mycoforage:"
)

type objectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Open(ctx context.Context, bucket, key string) (*domain.MediaObject, error)
	Ping(ctx context.Context) error
}

// mediaStore is the configured object store plus its shutdown hook.
type mediaStore struct {
	objectStore
	closeFn func(ctx context.Context) error
}

func (s mediaStore) close(ctx context.Context) {
	if s.closeFn != nil {
		_ = s.closeFn(ctx)
	}
}

func openMediaStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mediaStore, error) {
	switch cfg.Media.Backend {
	case config.MediaBackendGridFS:
		store, err := gridfs.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout, logger)
		if err != nil {
			return mediaStore{}, err
		}
		return mediaStore{objectStore: store, closeFn: store.Close}, nil
	case config.MediaBackendLocal:
		store, err := local.NewStore(cfg.Media.RootDir, logger)
		if err != nil {
			return mediaStore{}, err
		}
		return mediaStore{objectStore: store}, nil
	default:
		return mediaStore{}, fmt.Errorf("unknown media backend %q", cfg.Media.Backend)
	}
}

type jsonCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// lookupCache wraps Redis, or a no-op cache when Redis is disabled or down.
type lookupCache struct {
	jsonCache
	redis *cache.Redis
}

func (c lookupCache) enabled() bool { return c.redis != nil }

func (c lookupCache) Ping(ctx context.Context) error { return c.redis.Ping(ctx) }

func (c lookupCache) close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

// openCache never fails: lookups work uncached when Redis is unavailable.
func openCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) lookupCache {
	if cfg.Addr == "" {
		logger.Info("lookup cache disabled")
		return lookupCache{jsonCache: cache.Noop{}}
	}

	ctx, cancel := context.WithTimeout(ctx, cacheConnectTimeout)
	defer cancel()

	rc, err := cache.NewRedis(ctx, cache.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Prefix:   cacheKeyPrefix,
	}, logger)
	if err != nil {
		logger.Warn("lookup cache unavailable, continuing without it", slog.String("error", err.Error()))
		return lookupCache{jsonCache: cache.Noop{}}
	}
	return lookupCache{jsonCache: rc, redis: rc}
}
