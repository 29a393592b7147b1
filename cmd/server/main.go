package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rubrica/internal/platform/config"
	"rubrica/internal/platform/logger"
	"rubrica/internal/server"
)

// main loads configuration, wires the server and runs it until SIGINT or
// SIGTERM. Business logic lives in the internal feature packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing rubrica",
		"addr", cfg.Server.Addr,
		"env", cfg.Env,
		"store", cfg.Store,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		srv.Close()
		os.Exit(1)
	}

	log.Info("server stopped")
}
