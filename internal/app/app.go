package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/audit"
	locationrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/location"
	mushroomrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/mushroom"
	reciperepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/recipe"
	similarityrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/similarity"
	userrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider/countries"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider/geocode"
	"github.com/heartmarshall/mycoforage-backend/internal/auth"
	"github.com/heartmarshall/mycoforage-backend/internal/config"
	"github.com/heartmarshall/mycoforage-backend/internal/service/location"
	"github.com/heartmarshall/mycoforage-backend/internal/service/lookup"
	"github.com/heartmarshall/mycoforage-backend/internal/service/media"
	"github.com/heartmarshall/mycoforage-backend/internal/service/mushroom"
	"github.com/heartmarshall/mycoforage-backend/internal/service/recipe"
	"github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
	"github.com/heartmarshall/mycoforage-backend/internal/service/user"
	"github.com/heartmarshall/mycoforage-backend/internal/transport/middleware"
	"github.com/heartmarshall/mycoforage-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// stores, builds services and serves HTTP until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("media_backend", cfg.Media.Backend),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := openMediaStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	lookupCache := openCache(ctx, cfg.Redis, logger)
	defer lookupCache.close()

	// Repositories.
	txm := postgres.NewTxManager(pool)
	audits := auditrepo.New(pool)
	users := userrepo.New(pool)
	mushrooms := mushroomrepo.New(pool)
	locations := locationrepo.New(pool)
	recipes := reciperepo.New(pool)
	groups := similarityrepo.New(pool)

	// Services.
	similaritySvc := similarity.NewService(logger, groups, mushrooms, audits, txm)
	mushroomSvc := mushroom.NewService(logger, mushrooms, similaritySvc, locations, users, audits, txm)
	locationSvc := location.NewService(logger, locations, locations, mushrooms, users, audits, txm)
	recipeSvc := recipe.NewService(logger, recipes, mushrooms, users, audits, txm)
	userSvc := user.NewService(logger, users, mushrooms, locations, recipes, audits, txm)
	mediaSvc := media.NewService(logger, store, media.Config{
		PublicBaseURL:  cfg.Media.PublicBaseURL,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
		MaxDimension:   cfg.Media.MaxDimension,
		MaxPixels:      cfg.Media.MaxPixels,
	})
	lookupSvc := lookup.NewService(logger,
		geocode.NewProvider(cfg.Lookup.GeocodeURL, cfg.Lookup.UserAgent, cfg.Lookup.Timeout, logger),
		countries.NewProvider(cfg.Lookup.CountriesURL, cfg.Lookup.UserAgent, cfg.Lookup.Timeout, logger),
		lookupCache,
		cfg.Redis.TTL,
	)

	// Transport.
	health := rest.NewHealthHandler(pool, BuildVersion()).WithComponent("media", store)
	if lookupCache.enabled() {
		health.WithComponent("cache", lookupCache)
	}

	router := rest.NewRouter(rest.Handlers{
		Health:    health,
		Locations: rest.NewLocationHandler(locationSvc, mediaSvc, logger),
		Mushrooms: rest.NewMushroomHandler(mushroomSvc, similaritySvc, mediaSvc, logger),
		Recipes:   rest.NewRecipeHandler(recipeSvc, mediaSvc, logger),
		Users:     rest.NewUserHandler(userSvc, mediaSvc, logger),
		Media:     rest.NewMediaHandler(mediaSvc, cfg.Media.MaxUploadBytes, logger),
		Lookup:    rest.NewLookupHandler(lookupSvc, logger),
	})

	var rateLimit middleware.Middleware
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		rateLimit = limiter.Middleware()
	}

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimit,
		middleware.Auth(auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until ctx is cancelled or the listener fails.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
