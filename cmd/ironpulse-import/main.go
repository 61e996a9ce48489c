package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/claude/ironpulse/internal/config"
	"github.com/claude/ironpulse/internal/ingest"
	"github.com/claude/ironpulse/internal/ingest/program"
	"github.com/claude/ironpulse/internal/journal"
	"github.com/claude/ironpulse/internal/programs"
	"github.com/claude/ironpulse/internal/state"
	"github.com/claude/ironpulse/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	filePath := flag.String("file", "", "path to the tabular program document (required)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without installing the program")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironpulse-import [-config config.yaml] -file program.csv [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to read .env", "error", err)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Error("failed to read program document", "path", *filePath, "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode: the program will not be installed")
		p, err := program.Parse(string(data))
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		printStats(log, ingest.Summarize(p))
		return
	}

	// Load config
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

	f, err := os.Open(*filePath)
	if err != nil {
		log.Error("failed to open program document", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := program.NewProvider(j, store, log).Ingest(ctx, f, "cli")
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	printStats(log, result)
	log.Info("import complete", "mode", j.Snapshot().ProgramMode)
}

func printStats(log *slog.Logger, result *ingest.Result) {
	log.Info("import stats",
		"days", result.DaysImported,
		"training_days", result.TrainingDays,
		"rest_days", result.RestDays,
		"exercises", result.ExercisesImported,
	)
}
