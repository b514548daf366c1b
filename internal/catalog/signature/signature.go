// Package signature derives the stable identity keys used as upsert keys
// across feed imports. All functions are pure: repeated imports of unchanged
// data produce byte-identical keys.
package signature

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"bootfeed/internal/catalog/normalize"
)

// Product keys a brand+model combination. Color, size and wording never
// participate.
func Product(brand, model string) string {
	return hash(normalize.Text(brand) + "|" + normalize.Text(model))
}

// Variant keys one color of a product. A non-empty GTIN wins unconditionally:
// it is the merchant's own global identifier and stays stable across feed
// refreshes even if color parsing changes.
func Variant(productID, gtin, color string) string {
	if g := strings.TrimSpace(gtin); g != "" {
		return hash(strings.ToLower(g))
	}
	return hash(strings.ToLower(productID) + "|" + strings.ToLower(normalize.Text(color)))
}

// Offer keys one (merchant, variant, size) sellable unit. Two sizes from the
// same merchant are genuinely different offers, so size is part of identity.
func Offer(variantID, merchantKey, size string) string {
	return hash(variantID + "|" + merchantKey + "|" + size)
}

// MerchantKey returns the feed-assigned merchant ID when present, otherwise a
// name-derived stable ID.
func MerchantKey(merchantID, merchantName string) string {
	if id := strings.TrimSpace(merchantID); id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("merchant:"+normalize.Text(merchantName))).String()
}

func hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
