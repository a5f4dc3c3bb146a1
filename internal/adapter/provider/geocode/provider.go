// Package geocode resolves free-text place names to coordinates through a
// Nominatim-compatible search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Provider queries the geocoding API.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public Nominatim instance.
func NewProvider(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "geocode"),
	}
}

// Search returns the coordinates of the best match for query.
// Returns nil, nil if nothing matches.
func (p *Provider) Search(ctx context.Context, query string) (*domain.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := p.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	p.log.DebugContext(ctx, "geocode request", slog.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := provider.DoWithRetry(ctx, p.httpClient, req, p.log)
	if err != nil {
		p.log.ErrorContext(ctx, "geocode request failed", slog.String("query", query), slog.String("error", err.Error()))
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocode: read body: %w", err)
	}

	var places []apiPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("geocode: decode json: %w", err)
	}

	coords, err := firstMatch(places)
	if err != nil {
		return nil, err
	}

	p.log.DebugContext(ctx, "geocode response",
		slog.String("query", query),
		slog.Bool("found", coords != nil),
	)

	return coords, nil
}

func firstMatch(places []apiPlace) (*domain.Coordinates, error) {
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: parse lon %q: %w", places[0].Lon, err)
	}

	coords := &domain.Coordinates{Lat: lat, Lng: lng}
	if !coords.Valid() {
		return nil, fmt.Errorf("geocode: coordinates out of range: %v", *coords)
	}
	return coords, nil
}
