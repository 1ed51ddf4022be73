package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/invite"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/server"
	"github.com/baatolabs/baatometrics-api/internal/storage/factory"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Get()

	log.Info("Starting BaatoMetrics API",
		"backend", cfg.Storage.Backend,
		"share_ref", cfg.Share.Ref,
	)

	backend, err := factory.Open(cfg)
	if err != nil {
		log.Error("Failed to open storage backend", "error", err)
		os.Exit(1)
	}

	stores, err := store.Open(backend, cfg.Share.BaseURL, cfg.Share.Ref)
	if err != nil {
		log.Error("Failed to open data stores", "error", err)
		os.Exit(1)
	}

	shortLinks := invite.NewShortLinks(backend)

	srv := server.New(cfg, stores, shortLinks)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
