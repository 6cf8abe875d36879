package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quantfolio/frontier/internal/config"
	"github.com/quantfolio/frontier/internal/database"
	"github.com/quantfolio/frontier/internal/modules/charts"
	"github.com/quantfolio/frontier/internal/modules/marketdata"
	"github.com/quantfolio/frontier/internal/modules/optimization"
	"github.com/quantfolio/frontier/internal/scheduler"
	"github.com/quantfolio/frontier/internal/server"
	"github.com/quantfolio/frontier/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Config{Level: "info"})
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Str("dataset_url", cfg.DatasetURL).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting frontier service")

	db, err := database.New(filepath.Join(cfg.DataDir, "frontier.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	// Market data: fetch, cache, parse.
	client := marketdata.NewClient(cfg.DatasetURL, log)
	repo := marketdata.NewRepository(db.Conn(), log)
	if err := repo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dataset cache schema")
	}
	market := marketdata.NewService(client, repo, cfg.DatasetTTL, log)

	// Simulation engine.
	stats := optimization.NewStatsBuilder(optimization.StatsConfig{
		PeriodsPerYear: cfg.PeriodsPerYear,
	}, log)
	sim := optimization.NewSimulator(optimization.SimulatorConfig{
		MinTrials: cfg.MinTrials,
		MaxTrials: cfg.MaxTrials,
	}, log)
	optimizer := optimization.NewService(market, stats, sim, log)

	chartSvc := charts.NewService(log)

	// Background dataset refresh.
	sched := scheduler.New(log)
	if err := sched.AddJob("@daily", marketdata.NewRefreshJob(market)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule dataset refresh")
	}
	sched.Start()
	defer sched.Stop()

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Config:    cfg,
		Optimizer: optimizer,
		Charts:    chartSvc,
		DevMode:   cfg.DevMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
