package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Signature columns are the primary keys: the unique constraint is what
	// turns a concurrent duplicate create into a detectable conflict.
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		raw_name TEXT,
		description TEXT,
		image TEXT,
		genders TEXT,
		age_group TEXT,
		surface TEXT,
		sole TEXT,
		environment TEXT,
		price_min DECIMAL(10,2) DEFAULT 0,
		price_max DECIMAL(10,2) DEFAULT 0,
		has_stock BOOLEAN DEFAULT false,
		best_offer_id TEXT,
		merchants TEXT,
		aggregated_at TIMESTAMP,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS variants (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		color TEXT NOT NULL,
		gtin TEXT,
		image_main TEXT,
		images TEXT,
		surface TEXT,
		sizes TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		variant_id TEXT NOT NULL,
		merchant_id TEXT,
		merchant_name TEXT NOT NULL,
		size TEXT NOT NULL,
		price DECIMAL(10,2) DEFAULT 0,
		in_stock BOOLEAN DEFAULT false,
		url TEXT,
		tracking_url TEXT,
		currency TEXT DEFAULT 'EUR',
		last_seen_at TIMESTAMP,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_variants_product_id ON variants(product_id);
	CREATE INDEX IF NOT EXISTS idx_offers_variant_id ON offers(variant_id);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
