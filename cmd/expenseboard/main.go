package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expenseboard/internal/api"
	"expenseboard/internal/cli"
	apphttp "expenseboard/internal/http"
	applog "expenseboard/internal/log"
	"expenseboard/internal/state"
)

func main() {
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel)

	backend, err := api.NewClient(cfg.BackendURL, cfg.HTTPTimeout, logger.WithComponent(applog.ComponentAPI))
	if err != nil {
		logger.Error("Failed to initialize backend client",
			applog.FieldBackendURL, cfg.BackendURL,
			applog.FieldError, err)
		os.Exit(1)
	}

	store := state.NewStore()

	srv, err := apphttp.NewServer(":"+cfg.Port, cfg, backend, store, logger.WithComponent(applog.ComponentHTTP))
	if err != nil {
		logger.Error("Failed to initialize server", applog.FieldError, err)
		os.Exit(1)
	}

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Fetch the collection in the background so the first page renders
	// immediately in the loading state.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		expenses, err := backend.List(ctx)
		if err != nil {
			logger.Error("Initial expense load failed",
				applog.FieldOperation, applog.OpList,
				applog.FieldError, err)
			store.SetFailed(err)
			return
		}
		logger.Info("Initial expense load complete", "count", len(expenses))
		store.SetLoaded(expenses)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting expenseboard server",
		"port", cfg.Port,
		applog.FieldBackendURL, cfg.BackendURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
