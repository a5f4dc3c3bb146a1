package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heartmarshall/mycoforage-backend/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenMediaStore_Local(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Media: config.MediaConfig{
		Backend: config.MediaBackendLocal,
		RootDir: filepath.Join(t.TempDir(), "media"),
	}}

	store, err := openMediaStore(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("openMediaStore: %v", err)
	}
	defer store.close(context.Background())

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := store.Put(ctx, "users", "a.png", strings.NewReader("x"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	obj, err := store.Open(ctx, "users", "a.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	obj.Body.Close()
}

func TestOpenMediaStore_UnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Media: config.MediaConfig{Backend: "s3"}}

	if _, err := openMediaStore(context.Background(), cfg, discardLogger()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenCache_DisabledWithoutAddr(t *testing.T) {
	t.Parallel()

	c := openCache(context.Background(), config.RedisConfig{}, discardLogger())
	defer c.close()

	if c.enabled() {
		t.Fatal("cache should be disabled without an address")
	}
	var v string
	hit, err := c.GetJSON(context.Background(), "k", &v)
	if err != nil || hit {
		t.Fatalf("GetJSON = %v, %v; want miss", hit, err)
	}
}

func TestOpenCache_UnreachableFallsBack(t *testing.T) {
	t.Parallel()

	// Nothing listens on port 1.
	c := openCache(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, discardLogger())
	defer c.close()

	if c.enabled() {
		t.Fatal("unreachable redis should fall back to no-op cache")
	}
	if err := c.SetJSON(context.Background(), "k", "v", 0); err != nil {
		t.Fatalf("SetJSON on no-op cache: %v", err)
	}
}
