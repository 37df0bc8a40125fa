// Package main is the entry point for the annealer sampling service.
// It wires the simulated annealing pipeline (model extraction, time
// evolution, inverse-transform sampling) behind an HTTP API, persists
// run history to SQLite, and prunes old runs on a cron schedule.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/annealer/internal/config"
	"github.com/aristath/annealer/internal/database"
	"github.com/aristath/annealer/internal/modules/runs"
	"github.com/aristath/annealer/internal/modules/sampling"
	"github.com/aristath/annealer/internal/modules/simulation"
	"github.com/aristath/annealer/internal/scheduler"
	"github.com/aristath/annealer/internal/server"
	"github.com/aristath/annealer/pkg/logger"
)

func main() {
	// Load configuration first to get log level.
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting annealer")

	// Run history database.
	runsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "runs.db"),
		Profile: database.ProfileStandard,
		Name:    "runs",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open runs database")
	}
	defer runsDB.Close()

	repo := runs.NewRepository(runsDB, log)
	if err := repo.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize runs schema")
	}

	// Sampling pipeline: local time-evolution simulator behind the
	// black-box adapter, inverse-transform sampler on top.
	simulator := simulation.NewBoltzmannSimulator(log)
	adapter := simulation.NewAdapter(simulator, log)
	sampler := sampling.NewSampler(cfg.Seed, cfg.Workers)
	service := sampling.NewService(adapter, sampler, log)

	// Retention scheduler.
	sched := scheduler.New(log)
	retention := runs.NewRetentionJob(repo, time.Duration(cfg.RetentionDays)*24*time.Hour, log)
	if err := sched.AddJob(cfg.Schedule, retention); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule retention job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:     log,
		Config:  cfg,
		RunsDB:  runsDB,
		Service: service,
		Repo:    repo,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// The HTTP server gets up to 10 seconds to finish in-flight requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
