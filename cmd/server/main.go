package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cookwhat/internal/app/di"
	"cookwhat/internal/app/router"
	"cookwhat/internal/platform/config"
	"cookwhat/internal/platform/db"
	"cookwhat/internal/platform/http/handler"
	"cookwhat/internal/platform/logger"
	"cookwhat/internal/platform/metrics"
	"cookwhat/internal/platform/redis"
	"cookwhat/internal/platform/validation"
	"cookwhat/internal/shared/ratelimiter"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(cfg.Log)
	defer logger.Install(zl)()
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Auth.JWTSecret == "" {
		// JWT_SECRETチェック（開発中の注意喚起）
		zap.S().Warn("JWT_SECRET is not set. Authenticated routes will answer 500.")
	}
	if cfg.Spoonacular.APIKey == "" {
		zap.S().Warn("SPOONACULAR_API_KEY is not set. Recipe search will fail upstream.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zap.S().Fatalw("server stopped with error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	if err := validation.RegisterWithGin(); err != nil {
		return err
	}

	// db
	gdb, err := db.Open(cfg.DB, di.Models()...)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := redis.NewRedisClient(ctx, cfg.Redis); err != nil {
			zap.S().Warn("Redis unavailable. Sessions and search results are kept in the database.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					zap.S().Errorw("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	m := metrics.New()
	app := di.Build(ctx, cfg, gdb, rdb, m)
	defer app.Close()

	deps := map[string]handler.Pinger{"database": handler.PingFunc(sqlDB.PingContext)}
	if rdb != nil {
		deps["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	engine := router.NewRouter(app.Handlers, router.Options{
		Auth:        app.Authenticator,
		Metrics:     m,
		Logger:      zl,
		AuthLimiter: ratelimiter.NewKeyedLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst),
		Readiness:   handler.Readiness(2*time.Second, deps),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
