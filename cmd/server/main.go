package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redtable/pos-system/internal/api"
	"github.com/redtable/pos-system/internal/infrastructure/db/postgres"
	"github.com/redtable/pos-system/internal/infrastructure/db/redis"
	"github.com/redtable/pos-system/internal/infrastructure/queue"
	"github.com/redtable/pos-system/internal/pkg/config"
	"github.com/redtable/pos-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	ctx := context.Background()

	sqlDB, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(ctx, sqlDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run schema migrations")
	}

	db := postgres.NewDB(sqlDB, logger.Component("postgres"), cfg.Postgres.StatementTimeout)
	if cfg.SeedDemoData {
		if err := postgres.SeedDemoData(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// Kitchen feed: order lifecycle events flow through a sharded dispatcher
	// into Redis pub/sub, off the request path.
	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()
	dispatcher := queue.NewDispatcher(0, redis.NewKitchenFeed(rdb), logger.Component("kitchen-feed"))
	dispatcher.Start(feedCtx)

	e := api.NewRouter(cfg, sqlDB, rdb, dispatcher, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(addr); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
