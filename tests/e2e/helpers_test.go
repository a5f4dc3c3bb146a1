//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/cache"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/audit"
	locationrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/location"
	mushroomrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/mushroom"
	reciperepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/recipe"
	similarityrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/similarity"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider/countries"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/provider/geocode"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/storage/local"
	"github.com/heartmarshall/mycoforage-backend/internal/auth"
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

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

type testServer struct {
	*httptest.Server
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// setupTestServer wires the full HTTP stack against a real PostgreSQL
// container (shared via testhelper) and a temp-dir media store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := local.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	// Lookups point at an upstream that always fails.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	txm := postgres.NewTxManager(pool)
	audits := auditrepo.New(pool)
	users := userrepo.New(pool)
	mushrooms := mushroomrepo.New(pool)
	locations := locationrepo.New(pool)
	recipes := reciperepo.New(pool)
	groups := similarityrepo.New(pool)

	similaritySvc := similarity.NewService(logger, groups, mushrooms, audits, txm)
	mushroomSvc := mushroom.NewService(logger, mushrooms, similaritySvc, locations, users, audits, txm)
	locationSvc := location.NewService(logger, locations, locations, mushrooms, users, audits, txm)
	recipeSvc := recipe.NewService(logger, recipes, mushrooms, users, audits, txm)
	userSvc := user.NewService(logger, users, mushrooms, locations, recipes, audits, txm)
	mediaSvc := media.NewService(logger, store, media.Config{
		PublicBaseURL:  "http://media.test",
		MaxUploadBytes: 1 << 20,
		MaxDimension:   512,
	})
	lookupSvc := lookup.NewService(logger,
		geocode.NewProvider(upstream.URL, "e2e", time.Second, logger),
		countries.NewProvider(upstream.URL, "e2e", time.Second, logger),
		cache.Noop{},
		time.Minute,
	)

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "e2e").WithComponent("media", store),
		Locations: rest.NewLocationHandler(locationSvc, mediaSvc, logger),
		Mushrooms: rest.NewMushroomHandler(mushroomSvc, similaritySvc, mediaSvc, logger),
		Recipes:   rest.NewRecipeHandler(recipeSvc, mediaSvc, logger),
		Users:     rest.NewUserHandler(userSvc, mediaSvc, logger),
		Media:     rest.NewMediaHandler(mediaSvc, 1<<20, logger),
		Lookup:    rest.NewLookupHandler(lookupSvc, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Auth(auth.NewVerifier(jwtSecret, jwtIssuer)),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv}
}

// newToken signs an identity token for a fresh user id.
func newToken(t *testing.T) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"iss":   jwtIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(15 * time.Minute).Unix(),
		"email": "forager-" + userID.String()[:8] + "@example.org",
		"name":  "Forager",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed, userID
}

// signUp creates a profile for a fresh identity and returns its token.
func signUp(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	token, userID := newToken(t)
	status, _ := ts.do(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	return token, userID
}

// do sends a JSON request and returns the status and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do plus decoding the body into a map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body, token)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

func createMushroom(t *testing.T, ts *testServer, token, name string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/mushrooms", map[string]any{
		"name":             name,
		"shortDescription": "cap and gills",
		"toxicity":         "EDIBLE",
	}, token)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	id, ok := body["id"].(string)
	require.True(t, ok)
	return id
}

func items(t *testing.T, body map[string]any) []any {
	t.Helper()
	list, ok := body["items"].([]any)
	require.True(t, ok, "expected items array in %v", body)
	return list
}
