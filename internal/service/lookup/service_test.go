package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type fakeGeocoder struct {
	result *domain.Coordinates
	err    error
	calls  []string
}

func (f *fakeGeocoder) Search(_ context.Context, query string) (*domain.Coordinates, error) {
	f.calls = append(f.calls, query)
	return f.result, f.err
}

type fakeCountries struct {
	names []string
	err   error
	calls int
}

func (f *fakeCountries) Names(context.Context) ([]string, error) {
	f.calls++
	return f.names, f.err
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	readErr error
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if c.readErr != nil {
		return false, c.readErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func newTestService(g *fakeGeocoder, c *fakeCountries, cache *memCache) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), g, c, cache, time.Hour)
}

func TestGeocode_CachesResult(t *testing.T) {
	t.Parallel()
	geo := &fakeGeocoder{result: &domain.Coordinates{Lat: 60.1, Lng: 24.9}}
	cache := newMemCache()
	svc := newTestService(geo, &fakeCountries{}, cache)
	ctx := context.Background()

	first, err := svc.Geocode(ctx, "  Helsinki ")
	require.NoError(t, err)
	second, err := svc.Geocode(ctx, "HELSINKI")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Helsinki"}, geo.calls)
	assert.Equal(t, time.Hour, cache.ttls["lookup:geocode:helsinki"])
}

func TestGeocode_CachesMiss(t *testing.T) {
	t.Parallel()
	geo := &fakeGeocoder{}
	svc := newTestService(geo, &fakeCountries{}, newMemCache())
	ctx := context.Background()

	for range 2 {
		coords, err := svc.Geocode(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Nil(t, coords)
	}
	assert.Len(t, geo.calls, 1)
}

func TestGeocode_CacheFailureFallsBack(t *testing.T) {
	t.Parallel()
	geo := &fakeGeocoder{result: &domain.Coordinates{Lat: 1, Lng: 2}}
	cache := newMemCache()
	cache.readErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := newTestService(geo, &fakeCountries{}, cache)

	coords, err := svc.Geocode(context.Background(), "Turku")
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 1, Lng: 2}, coords)
	assert.Len(t, geo.calls, 1)
}

func TestGeocode_ProviderError(t *testing.T) {
	t.Parallel()
	cache := newMemCache()
	svc := newTestService(&fakeGeocoder{err: errors.New("timeout")}, &fakeCountries{}, cache)

	_, err := svc.Geocode(context.Background(), "Turku")
	require.Error(t, err)
	assert.Empty(t, cache.data)
}

func TestGeocode_Validation(t *testing.T) {
	t.Parallel()
	geo := &fakeGeocoder{}
	svc := newTestService(geo, &fakeCountries{}, newMemCache())

	long := make([]byte, maxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}

	for _, q := range []string{"", "   ", string(long)} {
		_, err := svc.Geocode(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Empty(t, geo.calls)
}

func TestCountries_Caches(t *testing.T) {
	t.Parallel()
	countries := &fakeCountries{names: []string{"Finland", "Sweden"}}
	svc := newTestService(&fakeGeocoder{}, countries, newMemCache())
	ctx := context.Background()

	for range 3 {
		names, err := svc.Countries(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Finland", "Sweden"}, names)
	}
	assert.Equal(t, 1, countries.calls)
}

func TestCountries_EmptyNotCached(t *testing.T) {
	t.Parallel()
	countries := &fakeCountries{}
	cache := newMemCache()
	svc := newTestService(&fakeGeocoder{}, countries, cache)

	names, err := svc.Countries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
	assert.Empty(t, cache.data)
}

func TestCountries_ProviderError(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakeGeocoder{}, &fakeCountries{err: errors.New("503")}, newMemCache())

	_, err := svc.Countries(context.Background())
	assert.Error(t, err)
}
