package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	srv, cleanup, err := mcp.Bootstrap(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to bootstrap MCP server", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
