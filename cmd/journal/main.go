package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/tradejournal/config"
	"github.com/alejandrodnm/tradejournal/internal/adapters/notify"
	"github.com/alejandrodnm/tradejournal/internal/adapters/storage"
	"github.com/alejandrodnm/tradejournal/internal/application/journal"
	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/importer"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	save := flag.Bool("save", false, "merge imported trades into the stored journal")
	table := flag.Bool("table", false, "print every trade as a table (default: 1-line summary per file)")
	workers := flag.Int("workers", 0, "files imported in parallel (overrides config, 0 = config)")
	history := flag.Int("history", 0, "print the last N recorded imports and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: journal [flags] file.csv...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *workers > 0 {
		cfg.Import.Workers = *workers
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reporter := notify.NewConsole(*table, cfg.Import.MaxDisplayDiagnostics)

	if *history > 0 {
		os.Exit(runHistory(ctx, cfg.Storage, reporter, *history))
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	slog.Debug("journal starting",
		"config", *configPath,
		"files", len(paths),
		"workers", cfg.Import.Workers,
		"save", *save,
	)

	results := importer.ImportFiles(ctx, paths, cfg.Import.Workers)
	if err := reporter.Report(ctx, results); err != nil {
		slog.Warn("reporter error", "err", err)
	}

	if *save {
		if err := saveResults(ctx, cfg.Storage, results); err != nil {
			slog.Error("failed to save journal", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
	}

	for _, res := range results {
		if res.OK() {
			return
		}
	}
	os.Exit(1)
}

// saveResults merges the results into the stored journal. A failure to close the
// database is returned when nothing else failed first.
func saveResults(ctx context.Context, cfg config.StorageConfig, results []domain.ImportResult) (err error) {
	store, err := storage.NewSQLiteStorage(cfg.DSN, cfg.Key)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("failed to close storage", "err", cerr, "dsn", cfg.DSN)
			if err == nil {
				err = fmt.Errorf("close storage: %w", cerr)
			}
		}
	}()

	_, err = journal.NewService(store).Commit(ctx, results)
	return err
}

func runHistory(ctx context.Context, cfg config.StorageConfig, reporter *notify.Console, limit int) int {
	store, err := storage.NewSQLiteStorage(cfg.DSN, cfg.Key)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.DSN)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close storage", "err", err, "dsn", cfg.DSN)
		}
	}()

	records, err := store.ImportHistory(ctx, limit)
	if err != nil {
		slog.Error("failed to read import history", "err", err)
		return 1
	}
	reporter.PrintHistory(records)
	return 0
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stdout queda para el informe; los logs van a stderr
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
