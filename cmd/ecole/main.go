package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ecole/internal/analytics"
	"ecole/internal/config"
	apphttp "ecole/internal/http"
	applog "ecole/internal/log"
	"ecole/internal/store"
	"ecole/internal/store/memory"
	mongostore "ecole/internal/store/mongo"
)

func main() {
	// A missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo, applog.ComponentApp)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var st store.Store
	switch cfg.DataBackend {
	case "mongo":
		ms, disconnect, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.FetchTimeout, logger)
		if err != nil {
			logger.Error("failed to open mongo store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
			os.Exit(1)
		}
		defer func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			if err := disconnect(disconnectCtx); err != nil {
				logger.Error("mongo disconnect error", applog.FieldError, err)
			}
		}()
		st = ms
		logger.Info("initialized mongo store", applog.FieldBackend, cfg.DataBackend, "database", cfg.MongoDatabase)
	default:
		st = memory.NewDemo()
		logger.Info("initialized memory store with demo data", applog.FieldBackend, cfg.DataBackend)
	}

	svc := analytics.New(st, logger, cfg.DefaultLimit, cfg.AttendanceWindow)
	srv := apphttp.NewServer(":"+cfg.Port, svc, st, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
