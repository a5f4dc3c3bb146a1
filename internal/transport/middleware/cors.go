package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/heartmarshall/mycoforage-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// answering preflight requests without reaching the handler.
func CORS(cfg config.CORSConfig) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{RequestIDHeader, "X-Degraded", "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
