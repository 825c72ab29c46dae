package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"regdesk/internal/platform/config"
	"regdesk/internal/platform/httpserver"
	"regdesk/internal/platform/logger"
	"regdesk/internal/platform/metrics"
	"regdesk/internal/registration/handler"
	"regdesk/internal/registration/service"
	"regdesk/internal/registration/store"
	httptransport "regdesk/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	recordStore, closeStore, err := openStore(cfg, log)
	if err != nil {
		// A configured store we cannot reach at startup is fatal; the
		// supervisor restarts the process.
		log.Error("record store connection failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := service.New(recordStore,
		service.WithLogger(log),
		service.WithMetrics(m),
	)
	h := handler.New(svc, log)
	router := httptransport.NewRouter(h, log, m, cfg.ClientOrigin)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting regdesk", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// openStore picks the record store backend from configuration: Postgres when
// DATABASE_URL is set, Redis when REDIS_URL is set, otherwise process memory
// for local development.
func openStore(cfg config.Config, log *slog.Logger) (service.Store, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("using postgres record store")
		return store.NewPostgres(db), func() { _ = db.Close() }, nil

	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("using redis record store")
		return store.NewRedis(client), func() { _ = client.Close() }, nil

	default:
		log.Warn("no DATABASE_URL or REDIS_URL configured, registrations are held in memory")
		return store.NewMemory(), func() {}, nil
	}
}
