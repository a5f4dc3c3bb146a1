// Package countries fetches the list of country names from a REST Countries compatible API.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider"
)

const defaultURL = "https://restcountries.com/v3.1/all?fields=name"

// Provider queries the countries API.
type Provider struct {
	url        string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty url selects the public REST Countries endpoint.
func NewProvider(url, userAgent string, timeout time.Duration, logger *slog.Logger) *Provider {
	if url == "" {
		url = defaultURL
	}
	return &Provider{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "countries"),
	}
}

// Names returns the common names of all countries, deduplicated and sorted.
func (p *Provider) Names(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("countries: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := provider.DoWithRetry(ctx, p.httpClient, req, p.log)
	if err != nil {
		p.log.ErrorContext(ctx, "countries request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("countries: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("countries: read body: %w", err)
	}

	var list []apiCountry
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("countries: decode json: %w", err)
	}

	names := commonNames(list)
	p.log.DebugContext(ctx, "countries response", slog.Int("count", len(names)))
	return names, nil
}

func commonNames(list []apiCountry) []string {
	names := make([]string, 0, len(list))
	for _, c := range list {
		name := strings.TrimSpace(c.Name.Common)
		if name == "" {
			name = strings.TrimSpace(c.Name.Official)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
