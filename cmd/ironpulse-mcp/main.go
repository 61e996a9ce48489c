package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/ironpulse/internal/config"
	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/mcp"
	"github.com/claude/ironpulse/internal/programs"
	"github.com/claude/ironpulse/internal/state"
	"github.com/claude/ironpulse/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	remote := flag.String("server", "", "base URL of a running IronPulse server; reads the local store when empty")
	flag.Parse()

	// stdout carries the MCP protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to read .env", "error", err)
	}

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote)
		log.Info("mcp using remote journal", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		store, err := storage.Open(ctx, storage.Options{
			Driver:         cfg.Storage.Driver,
			Path:           cfg.Storage.Path,
			DSN:            cfg.Storage.Database.DSN(),
			MigrationsPath: cfg.Storage.Migrations,
		})
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()

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
		ds = mcp.NewLocal(j)
		log.Info("mcp using local journal", "driver", cfg.Storage.Driver)
	}

	if err := mcpserver.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
