package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/router"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"
	"github.com/DarkZone24/inventory-monitoring-system/internal/worker"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.SetupLogger(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	if cfg.AutoMigrate {
		m, err := infra.NewMigrator(db, cfg.DBDriver)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build migrator")
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_URL not set: analytics cache and low stock alerts disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Low stock alerts need both a queue and a mail relay.
	var alerts service.StockAlerter
	var pool *worker.Pool
	if rdb != nil && cfg.AlertsEnabled() {
		alerts = worker.NewDispatcher(rdb)
		alertWorker := worker.NewAlertWorker(infra.NewMailer(cfg), cfg.Recipients(), infra.NewCircuitBreaker(infra.DefaultCBConfig()))
		pool = worker.NewPool(rdb, alertWorker, worker.DefaultPoolConfig(cfg.WorkerPoolSize))
		pool.Start(ctx)
	} else {
		log.Info().Msg("low stock alert mail disabled")
	}

	r, err := router.New(cfg, db, rdb, alerts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", cfg.DBDriver).Msgf("inventory server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if pool != nil {
		pool.Wait()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
