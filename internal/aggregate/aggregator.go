// Package aggregate recomputes the denormalized per-product rollups from the
// product's variants and offers. The rollup is never a source of truth.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bootfeed/internal/logger"
	"bootfeed/internal/store"
)

type Aggregator struct {
	store store.CatalogStore
	log   *logger.Logger
	now   func() time.Time
}

func New(st store.CatalogStore, log *logger.Logger) *Aggregator {
	return &Aggregator{store: st, log: log, now: time.Now}
}

// AggregateProduct walks all offers of all variants of the product. An offer
// qualifies only when price > 0 and it is in stock; non-qualifying offers stay
// persisted but count for nothing. When no offer qualifies, the rollup is
// forced to has_stock=false with zeroed prices: stock state gates, not price
// presence.
func (a *Aggregator) AggregateProduct(ctx context.Context, productID string) error {
	product, err := a.store.Product(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("aggregate: product %s not found", productID)
	}

	variants, err := a.store.VariantsByProduct(ctx, productID)
	if err != nil {
		return err
	}

	var (
		priceMin, priceMax, bestPrice float64
		bestOfferID                   string
		hasStock                      bool
		merchants                     = map[string]struct{}{}
	)

	for _, variant := range variants {
		offers, err := a.store.OffersByVariant(ctx, variant.ID)
		if err != nil {
			return err
		}
		sizes := map[string]struct{}{}
		for _, offer := range offers {
			if offer.Price <= 0 || !offer.InStock {
				continue
			}
			hasStock = true
			merchants[offer.MerchantName] = struct{}{}
			sizes[offer.Size] = struct{}{}
			if priceMin == 0 || offer.Price < priceMin {
				priceMin = offer.Price
			}
			if offer.Price > priceMax {
				priceMax = offer.Price
			}
			if bestOfferID == "" || offer.Price < bestPrice {
				bestOfferID = offer.ID
				bestPrice = offer.Price
			}
		}
		if err := a.store.ReplaceVariantSizes(ctx, variant.ID, sortedSet(sizes)); err != nil {
			return err
		}
	}

	if !hasStock {
		priceMin, priceMax = 0, 0
		bestOfferID = ""
	}

	now := a.now()
	product.PriceMin = priceMin
	product.PriceMax = priceMax
	product.HasStock = hasStock
	product.BestOfferID = bestOfferID
	product.Merchants = sortedSet(merchants)
	product.AggregatedAt = &now

	return a.store.SaveRollup(ctx, product)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
