package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/api"
	"github.com/g3techvn/g-3.vn-sub004/internal/cache"
	"github.com/g3techvn/g-3.vn-sub004/internal/config"
	"github.com/g3techvn/g-3.vn-sub004/internal/logging"
	"github.com/g3techvn/g-3.vn-sub004/internal/ordertoken"
	"github.com/g3techvn/g-3.vn-sub004/internal/ratelimit"
	"github.com/g3techvn/g-3.vn-sub004/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := db.NewPostgresConnection(db.LoadPostgresConfig())
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer conn.Close()

	// In-memory tables are instance-scoped; all state is lost on
	// restart, which also resets rate counters and outstanding tokens.
	memo := cache.New(cache.DefaultSweepInterval)
	defer memo.Stop()
	tokens := ordertoken.NewIssuer()
	defer tokens.Stop()

	var limiter ratelimit.Store
	if cfg.RateLimitBackend == config.BackendRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("parse redis url", zap.Error(err))
		}
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(opts))
		logger.Info("rate limiting via redis")
	} else {
		l := ratelimit.NewLimiter()
		defer l.Stop()
		limiter = l
	}

	handler := api.NewRouter(api.Deps{
		DB:          conn,
		Limiter:     limiter,
		Tokens:      tokens,
		Memo:        memo,
		OrderSecret: cfg.OrderSecret,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting storefront api", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}
