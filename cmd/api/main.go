package main

import (
	"log"

	"bootfeed/internal/aggregate"
	"bootfeed/internal/api"
	"bootfeed/internal/catalog/tables"
	"bootfeed/internal/config"
	"bootfeed/internal/database"
	"bootfeed/internal/events"
	"bootfeed/internal/feed/sprinter"
	"bootfeed/internal/importer"
	"bootfeed/internal/logger"
	"bootfeed/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Wire the import pipeline behind the API trigger endpoint
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

	// Initialize API server
	server := api.New(cfg, logger, db, pipeline)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
