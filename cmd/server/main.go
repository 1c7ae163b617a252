package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/regreader/internal/api"
	"github.com/dgallion1/regreader/internal/config"
	"github.com/dgallion1/regreader/internal/docstore"
	"github.com/dgallion1/regreader/internal/fragstore"
	"github.com/dgallion1/regreader/internal/pipeline"
	"github.com/dgallion1/regreader/internal/reader"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize stores and clients.
	docs := docstore.New(cfg.DocTTL)
	sessions := reader.NewSessionStore(cfg.SessionTTL)
	frags := fragstore.NewClient(cfg.FragstoreURL, cfg.FragstoreAPIKey)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, docs, frags, log)
	orch.Start(ctx)

	// Periodic store eviction.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				docs.Cleanup()
				sessions.Cleanup()
			}
		}
	}()

	// Initialize HTTP server.
	srv := api.NewServer(docs, sessions, orch, log, cfg)

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

		frags.Close()
	}()

	log.Info("starting regreader", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
