// Package lookup serves geocoding and country lists from third-party APIs
// through a shared cache.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type geocoder interface {
	Search(ctx context.Context, query string) (*domain.Coordinates, error)
}

type countryLister interface {
	Names(ctx context.Context) ([]string, error)
}

type cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service implements lookup operations.
type Service struct {
	geocoder  geocoder
	countries countryLister
	cache     cache
	ttl       time.Duration
	log       *slog.Logger
}

// NewService creates a new lookup service. Cached answers expire after ttl.
func NewService(log *slog.Logger, geocoder geocoder, countries countryLister, cache cache, ttl time.Duration) *Service {
	return &Service{
		geocoder:  geocoder,
		countries: countries,
		cache:     cache,
		ttl:       ttl,
		log:       log.With("service", "lookup"),
	}
}
