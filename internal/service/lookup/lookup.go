package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const (
	maxQueryLength = 200
	countriesKey   = "lookup:countries"
)

// geocodeEntry is the cached form of a geocode answer. Misses are cached too.
type geocodeEntry struct {
	Found bool    `json:"found"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Geocode resolves a place name to coordinates. It returns nil, nil when
// the place is unknown.
func (s *Service) Geocode(ctx context.Context, query string) (*domain.Coordinates, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("q", "required")
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return nil, domain.NewValidationError("q", "too long")
	}

	key := "lookup:geocode:" + domain.NormalizeText(query)

	var entry geocodeEntry
	if s.cached(ctx, key, &entry) {
		return entry.coordinates(), nil
	}

	coords, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("lookup.Geocode: %w", err)
	}

	entry = geocodeEntry{}
	if coords != nil {
		entry = geocodeEntry{Found: true, Lat: coords.Lat, Lng: coords.Lng}
	}
	s.store(ctx, key, entry)

	return coords, nil
}

// Countries returns the sorted list of country names.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	var names []string
	if s.cached(ctx, countriesKey, &names) && len(names) > 0 {
		return names, nil
	}

	names, err := s.countries.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup.Countries: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	if len(names) > 0 {
		s.store(ctx, countriesKey, names)
	}

	return names, nil
}

// cached reads key into dst. Cache failures are logged and treated as a miss.
func (s *Service) cached(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return hit
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		s.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (e geocodeEntry) coordinates() *domain.Coordinates {
	if !e.Found {
		return nil
	}
	return &domain.Coordinates{Lat: e.Lat, Lng: e.Lng}
}
