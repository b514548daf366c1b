// Package store persists the catalog. The import pipeline and aggregator only
// depend on CatalogStore, not on any specific persistence technology.
package store

import (
	"context"

	"bootfeed/internal/models"
)

// CatalogStore is keyed by derived signatures: every upsert looks up the
// record by its identity key and updates it in place, or creates it. That is
// what makes repeated imports of the same feed idempotent.
type CatalogStore interface {
	UpsertProduct(ctx context.Context, p *models.Product) (created bool, err error)
	UpsertVariant(ctx context.Context, v *models.Variant) (created bool, err error)
	UpsertOffer(ctx context.Context, o *models.Offer) (created bool, err error)

	Product(ctx context.Context, id string) (*models.Product, error)
	VariantsByProduct(ctx context.Context, productID string) ([]models.Variant, error)
	OffersByVariant(ctx context.Context, variantID string) ([]models.Offer, error)

	ReplaceVariantSizes(ctx context.Context, variantID string, sizes []string) error
	SaveRollup(ctx context.Context, p *models.Product) error
}

// mergeProduct folds a fresh sighting into the stored record. Aggregate
// rollup fields are owned by the aggregator and left untouched.
func mergeProduct(dst, src *models.Product) {
	dst.Brand = src.Brand
	dst.Model = src.Model
	dst.RawName = src.RawName
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Image != "" {
		dst.Image = src.Image
	}
	dst.Genders = mergeTerms(dst.Genders, src.Genders)
	dst.AgeGroup = src.AgeGroup
	if src.Surface != "" {
		dst.Surface = src.Surface
	}
	if src.Sole != "" {
		dst.Sole = src.Sole
	}
	if src.Environment != "" {
		dst.Environment = src.Environment
	}
}

// mergeVariant unions images and sizes; scalar attributes take the latest
// sighting when it carries a value.
func mergeVariant(dst, src *models.Variant) {
	dst.ProductID = src.ProductID
	dst.Color = src.Color
	if src.GTIN != "" {
		dst.GTIN = src.GTIN
	}
	if src.ImageMain != "" {
		dst.ImageMain = src.ImageMain
	}
	dst.Images = mergeTerms(dst.Images, src.Images)
	if src.Surface != "" {
		dst.Surface = src.Surface
	}
	dst.Sizes = mergeTerms(dst.Sizes, src.Sizes)
}

// mergeOffer refreshes price/stock state; the latest sighting wins.
func mergeOffer(dst, src *models.Offer) {
	dst.VariantID = src.VariantID
	dst.MerchantID = src.MerchantID
	dst.MerchantName = src.MerchantName
	dst.Size = src.Size
	dst.Price = src.Price
	dst.InStock = src.InStock
	dst.URL = src.URL
	dst.TrackingURL = src.TrackingURL
	dst.Currency = src.Currency
	dst.LastSeenAt = src.LastSeenAt
}

// mergeTerms unions two lists preserving first-seen order.
func mergeTerms(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, lst := range [][]string{a, b} {
		for _, v := range lst {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
