package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/your-org/emoup/internal/catalog"
	"github.com/your-org/emoup/internal/config"
	"github.com/your-org/emoup/internal/observability"
	"github.com/your-org/emoup/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "path to catalog dump CSV")
	enrich := flag.Bool("enrich", false, "look up missing track metadata via Spotify")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: catalogctl -csv <dump.csv> [-enrich]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting catalog import", "csv", *csvPath)

	f, err := os.Open(*csvPath)
	if err != nil {
		slog.Error("open catalog dump", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	tracks, err := catalog.ReadCSV(f)
	if err != nil {
		slog.Error("parse catalog dump", "error", err)
		os.Exit(1)
	}
	slog.Info("parsed catalog dump", "tracks", len(tracks))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *enrich {
		enricher, err := catalog.NewEnricher(ctx, cfg.Spotify)
		if err != nil {
			slog.Error("init spotify enricher", "error", err)
			os.Exit(1)
		}
		if err := enricher.Enrich(ctx, tracks); err != nil {
			slog.Warn("enrich catalog metadata", "error", err)
		}
	}

	assigned, err := catalog.AssignClusters(tracks)
	if err != nil {
		slog.Error("cluster tracks", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewMongoStore(cfg.Mongo)
	if err != nil {
		slog.Error("connect to mongo", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			slog.Warn("close mongo", "error", err)
		}
	}()

	imported, err := catalog.Import(ctx, db, assigned)
	if err != nil {
		slog.Error("import catalog", "error", err, "imported", imported)
		os.Exit(1)
	}

	slog.Info("catalog import done", "imported", imported, "skipped", len(assigned)-imported)
}
