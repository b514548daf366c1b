package models

import (
	"time"
)

// Product is one brand+model combination ("NIKE PHANTOM GT"). Its ID is the
// sha1 signature of the normalized brand|model pair, which makes repeated
// imports upsert instead of duplicate.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Brand       string   `json:"brand" gorm:"not null"`
	Model       string   `json:"model" gorm:"not null"`
	RawName     string   `json:"raw_name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Genders     []string `json:"genders" gorm:"serializer:json"`
	AgeGroup    string   `json:"age_group"`
	Surface     string   `json:"surface"`
	Sole        string   `json:"sole"`
	Environment string   `json:"environment"`

	// Aggregate rollup, recomputed from variants/offers, never authoritative.
	PriceMin     float64    `json:"price_min"`
	PriceMax     float64    `json:"price_max"`
	HasStock     bool       `json:"has_stock"`
	BestOfferID  string     `json:"best_offer_id"`
	Merchants    []string   `json:"merchants" gorm:"serializer:json"`
	AggregatedAt *time.Time `json:"aggregated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Variant is one color of a product, keyed by GTIN when the feed provides one
// and by productID|color otherwise.
type Variant struct {
	ID        string   `json:"id" gorm:"primaryKey"`
	ProductID string   `json:"product_id" gorm:"not null;index"`
	Color     string   `json:"color" gorm:"not null"`
	GTIN      string   `json:"gtin"`
	ImageMain string   `json:"image_main"`
	Images    []string `json:"images" gorm:"serializer:json"`
	Surface   string   `json:"surface"`
	Sizes     []string `json:"sizes" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Offer is one (merchant, variant, size) sellable unit.
type Offer struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	VariantID    string    `json:"variant_id" gorm:"not null;index"`
	MerchantID   string    `json:"merchant_id"`
	MerchantName string    `json:"merchant_name" gorm:"not null"`
	Size         string    `json:"size" gorm:"not null"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2)"`
	InStock      bool      `json:"in_stock"`
	URL          string    `json:"url"`
	TrackingURL  string    `json:"tracking_url"`
	Currency     string    `json:"currency" gorm:"default:EUR"`
	LastSeenAt   time.Time `json:"last_seen_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
