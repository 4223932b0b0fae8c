package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"cookwhat/internal/app/di"
	authadapters "cookwhat/internal/feature/auth/adapters"
	"cookwhat/internal/platform/cache"
	"cookwhat/internal/platform/config"
	"cookwhat/internal/platform/db"
	"cookwhat/internal/platform/logger"
)

// cleanup purges expired sessions and search snapshots from the database.
// Redis-backed entries expire on their own and are not touched.
func main() {
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl := logger.New(cfg.Log)
	defer logger.Install(zl)()

	gdb, err := db.Open(cfg.DB, di.Models()...)
	if err != nil {
		zap.S().Fatalw("failed to open database", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sessions, err := authadapters.NewSessionGorm(gdb).DeleteExpired(ctx)
	if err != nil {
		zap.S().Fatalw("failed to delete expired sessions", "error", err)
	}
	snapshots, err := cache.NewGormSearchCache(gdb, cfg.Cache.SearchTTL).DeleteExpired(ctx)
	if err != nil {
		zap.S().Fatalw("failed to delete expired search snapshots", "error", err)
	}
	zap.S().Infow("cleanup ok", "sessions", sessions, "search_snapshots", snapshots)
}
