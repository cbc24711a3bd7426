package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/predictle/predictle/internal/bootstrap"
	"github.com/predictle/predictle/internal/config"
	"github.com/predictle/predictle/internal/database"
	"github.com/predictle/predictle/internal/handler"
	"github.com/predictle/predictle/internal/logger"
	"github.com/predictle/predictle/internal/prediction"
	"github.com/predictle/predictle/internal/scheduler"
	"github.com/predictle/predictle/internal/server"
	"github.com/predictle/predictle/internal/stats"
	"github.com/predictle/predictle/internal/user"
	"github.com/predictle/predictle/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "predictle",
		Version:     handler.Version,
		Environment: cfg.Environment,
	})
	log.Info("Starting predictle", "version", handler.Version)

	if err := database.Migrate(context.Background(), cfg.GetDBConnString()); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repos := bootstrap.InitializeRepositories(pool)

	userSvc := user.NewService(repos.User)
	predictionSvc := prediction.NewService(repos.Prediction, repos.Vote, repos.User)
	statsSvc := stats.NewService(repos.Stats)

	handler.InitValidator()

	workerPool := worker.NewPool(2, 16)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.SweepInterval, prediction.NewExpiryJob(predictionSvc))
	log.Info("Expiry sweep scheduled", "interval", cfg.SweepInterval)

	srv := server.NewServer(cfg.Port, cfg.AdminAPIKey, server.Services{
		User:       userSvc,
		Prediction: predictionSvc,
		Stats:      statsSvc,
		DB:         pool,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", "error", err)
		}
	}

	sched.Stop()
	workerPool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Shutdown complete")
}
