// Command repair-similarity restores the similarity partition: overlapping
// groups are merged and undersized groups are removed. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/mushroom"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/similarity"
	"github.com/heartmarshall/mycoforage-backend/internal/app"
	"github.com/heartmarshall/mycoforage-backend/internal/config"
	similaritysvc "github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := similaritysvc.NewService(logger,
		similarity.New(pool),
		mushroom.New(pool),
		audit.New(pool),
		postgres.NewTxManager(pool),
	)

	report, err := svc.Repair(ctx)
	if err != nil {
		logger.Error("similarity repair failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("similarity repair completed",
		slog.Int("groups_scanned", report.GroupsScanned),
		slog.Int("groups_merged", report.GroupsMerged),
		slog.Int("groups_pruned", report.GroupsPruned),
	)
}
