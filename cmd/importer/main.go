package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bootfeed/internal/aggregate"
	"bootfeed/internal/catalog/tables"
	"bootfeed/internal/config"
	"bootfeed/internal/database"
	"bootfeed/internal/events"
	"bootfeed/internal/feed"
	"bootfeed/internal/feed/sprinter"
	"bootfeed/internal/importer"
	"bootfeed/internal/logger"
	"bootfeed/internal/store"
)

func main() {
	var (
		feedPath = flag.String("feed", "", "path to the feed file (required)")
		batch    = flag.Int("batch", 500, "rows per cleanup batch")
		limit    = flag.Int("limit", 0, "max rows to process, 0 = unlimited")
		offset   = flag.Int("offset", 0, "rows to skip before processing")
		logEvery = flag.Int("log-every", 500, "progress log interval in rows")
		dryRun   = flag.Bool("dry-run", false, "map and infer but skip all writes")
	)
	flag.Parse()

	if *feedPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tbls := tables.Load(cfg.TablesDir, logger)
	catalogStore := store.NewGormStore(db.DB)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	pipeline := importer.New(
		sprinter.NewMapper(tbls),
		catalogStore,
		aggregate.New(catalogStore, logger),
		publisher,
		logger,
	)

	reader, err := feed.Open(*feedPath)
	if err != nil {
		logger.Fatal("Failed to open feed: %v", err)
	}
	defer reader.Close()

	stats, err := pipeline.Run(context.Background(), reader, importer.Options{
		BatchSize: *batch,
		Limit:     *limit,
		Offset:    *offset,
		LogEvery:  *logEvery,
		DryRun:    *dryRun,
	})
	if err != nil {
		logger.Fatal("Import failed: %v", err)
	}

	fmt.Printf("rows_total=%d rows_read=%d rows_skipped=%d rows_mapped=%d products=%d variants=%d offers=%d errors=%d dry_run=%t\n",
		stats.RowsTotal, stats.RowsRead, stats.RowsSkipped, stats.RowsMapped,
		stats.Products, stats.Variants, stats.Offers, stats.Errors, stats.DryRun)
}
