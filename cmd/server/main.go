package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/coursecheck/internal/api"
	"github.com/dgallion1/coursecheck/internal/config"
	"github.com/dgallion1/coursecheck/internal/pipeline"
	"github.com/dgallion1/coursecheck/internal/reportsink"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Report publishing is optional.
	var sink *reportsink.Client
	if cfg.ReportSinkURL != "" {
		sink = reportsink.NewClient(cfg.ReportSinkURL, cfg.ReportSinkAPIKey)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, sink, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if sink != nil {
			sink.Close()
		}
	}()

	log.Info("starting coursecheck", "port", cfg.Port, "content", cfg.ContentPath, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
