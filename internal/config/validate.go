package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Media.validate(); err != nil {
		return fmt.Errorf("media: %w", err)
	}

	if c.Media.Backend == MediaBackendGridFS && strings.TrimSpace(c.Mongo.URI) == "" {
		return fmt.Errorf("mongo.uri is required when media.backend is %q", MediaBackendGridFS)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("rate_limit.requests_per_min must be > 0 (got %d)", c.RateLimit.RequestsPerMin)
	}

	return nil
}

func (m *MediaConfig) validate() error {
	switch m.Backend {
	case MediaBackendLocal:
		if strings.TrimSpace(m.RootDir) == "" {
			return fmt.Errorf("root_dir is required for the local backend")
		}
	case MediaBackendGridFS:
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", MediaBackendLocal, MediaBackendGridFS, m.Backend)
	}

	if m.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", m.MaxUploadBytes)
	}
	if m.MaxDimension < 64 {
		return fmt.Errorf("max_dimension must be >= 64 (got %d)", m.MaxDimension)
	}
	if m.MaxPixels < int64(m.MaxDimension)*int64(m.MaxDimension) {
		return fmt.Errorf("max_pixels must be >= max_dimension squared (got %d)", m.MaxPixels)
	}

	u, err := url.Parse(m.PublicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("public_base_url must be an absolute URL (got %q)", m.PublicBaseURL)
	}
	m.PublicBaseURL = strings.TrimRight(m.PublicBaseURL, "/")

	return nil
}
