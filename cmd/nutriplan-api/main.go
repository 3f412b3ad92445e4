package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nutriplan-api/internal/config"
	"nutriplan-api/internal/httpapi"
	"nutriplan-api/internal/logger"
	"nutriplan-api/internal/nutrition"
)

const serviceName = "nutriplan-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ref, err := nutrition.LoadReference(cfg.Reference.File)
	if err != nil {
		log.Fatal("failed to load reference tables", zap.String("file", cfg.Reference.File), zap.Error(err))
	}

	handler := httpapi.NewRouter(
		httpapi.NewHandler(nutrition.NewCalculator(ref), log),
		httpapi.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		},
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("server failed", zap.Error(err))
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
