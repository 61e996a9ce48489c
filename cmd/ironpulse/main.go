package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	"github.com/claude/ironpulse/internal/config"
	"github.com/claude/ironpulse/internal/ingest/program"
	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/mcp"
	"github.com/claude/ironpulse/internal/programs"
	"github.com/claude/ironpulse/internal/server"
	"github.com/claude/ironpulse/internal/state"
	"github.com/claude/ironpulse/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	migrateOnly := flag.Bool("migrate-only", false, "prepare the storage schema and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("IronPulse starting", "version", Version)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to read .env", "error", err)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open storage; postgres migrations run here
	ctx := context.Background()
	store, err := storage.Open(ctx, storage.Options{
		Driver:         cfg.Storage.Driver,
		Path:           cfg.Storage.Path,
		DSN:            cfg.Storage.Database.DSN(),
		MigrationsPath: cfg.Storage.Migrations,
	})
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	templates, err := programs.Builtin()
	if err != nil {
		log.Error("failed to load program templates", "error", err)
		os.Exit(1)
	}

	repo := state.NewRepository(store, cfg.Journal.StorageKey, cfg.Journal.LegacyKeys, log)
	j, err := journal.New(ctx, repo, templates, log)
	if err != nil {
		log.Error("failed to load journal", "error", err)
		os.Exit(1)
	}

	// Create server
	importer := program.NewProvider(j, store, log)
	srv := server.New(j, importer, store, log)
	srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcp.New(mcp.NewLocal(j), Version, log)))

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "local (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
