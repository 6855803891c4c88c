// Command cloudvaultd runs the cloudvault file server: it loads
// configuration, wires the catalog/storage/upload/download engines and
// command handlers, and serves the wire protocol over TCP until signaled
// to stop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sxlmons/cloudvault/internal/catalog"
	"github.com/sxlmons/cloudvault/internal/command"
	"github.com/sxlmons/cloudvault/internal/config"
	"github.com/sxlmons/cloudvault/internal/download"
	"github.com/sxlmons/cloudvault/internal/handlers"
	"github.com/sxlmons/cloudvault/internal/logger"
	"github.com/sxlmons/cloudvault/internal/server"
	"github.com/sxlmons/cloudvault/internal/session"
	"github.com/sxlmons/cloudvault/internal/storage"
	"github.com/sxlmons/cloudvault/internal/upload"
	"github.com/sxlmons/cloudvault/internal/userstore"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file (default: built-in defaults + environment)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "cloudvaultd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	adapter, err := storage.New(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	cat, err := catalog.New(cfg.MetadataPath, adapter)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	deps := &handlers.Deps{
		Users:    userstore.NewMemoryStore(),
		Catalog:  cat,
		Upload:   upload.New(cat, adapter, cfg.ChunkSize),
		Download: download.New(cat, adapter, cfg.ChunkSize),
	}

	registry := command.NewRegistry()
	handlers.Register(registry, deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := session.NewManager(ctx, cfg.MaxConcurrentClients, time.Duration(cfg.SessionTimeoutMinutes)*time.Minute)
	manager.StartSweep()

	srv := server.New(manager, registry)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx, fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	srv.Shutdown()
	logger.Info("server stopped")
	return nil
}
