// Package sprinter maps raw Sprinter feed rows onto the canonical
// product/variant/offer records.
package sprinter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bootfeed/internal/catalog/extract"
	"bootfeed/internal/catalog/normalize"
	"bootfeed/internal/catalog/signature"
	"bootfeed/internal/catalog/tables"
	"bootfeed/internal/feed"
	"bootfeed/internal/models"
)

// ErrSkip marks a row rejection: the row lacks required data or is
// out-of-stock. Rejections are counted, never logged as failures.
var ErrSkip = errors.New("row skipped")

// Mapped is the result of mapping one feed row: three related records sharing
// derived identity keys.
type Mapped struct {
	Product models.Product
	Variant models.Variant
	Offer   models.Offer
}

// ApplyInference copies inferred attributes into fields the mapper left
// empty. Values the mapper already set are never overwritten.
func (r *Mapped) ApplyInference(inf extract.Inferred) {
	if r.Variant.Surface == "" {
		r.Variant.Surface = inf.Surface
	}
	if r.Product.Surface == "" {
		r.Product.Surface = inf.Surface
	}
	if r.Product.Environment == "" {
		r.Product.Environment = inf.Environment
	}
	if r.Product.Sole == "" {
		r.Product.Sole = inf.Sole
	}
}

type Mapper struct {
	brands    *normalize.Brands
	colors    *normalize.Colors
	models    *normalize.Models
	extractor *extract.Extractor
	now       func() time.Time
}

func NewMapper(t *tables.Tables) *Mapper {
	brands := normalize.NewBrands(t.Brands)
	colors := normalize.NewColors(t.Colors)
	return &Mapper{
		brands:    brands,
		colors:    colors,
		models:    normalize.NewModels(t, brands, colors),
		extractor: extract.NewExtractor(t),
		now:       time.Now,
	}
}

var tallaRe = regexp.MustCompile(`(?i)\btalla\b`)

// Map transforms one raw row into its three records, or returns an ErrSkip
// rejection. Out-of-stock rows are dropped entirely: this importer does not
// track out-of-stock inventory.
func (m *Mapper) Map(row feed.Row) (*Mapped, error) {
	rawBrand := row.Get("brand", "brand_name", "marca")
	rawTitle := row.Get("title", "product_name", "nombre")
	if rawBrand == "" || rawTitle == "" {
		return nil, fmt.Errorf("%w: missing brand or title", ErrSkip)
	}

	if !availabilityInStock(row.Get("availability", "in_stock", "stock")) {
		return nil, fmt.Errorf("%w: out of stock", ErrSkip)
	}

	// Size comes from its own column, never parsed out of the title.
	rawSize := row.Get("size", "talla")
	size := normalize.SizeOneSize
	if rawSize != "" {
		size = normalize.Size(rawSize)
		if size == "" {
			return nil, fmt.Errorf("%w: invalid size %q", ErrSkip, rawSize)
		}
	}

	// Keep the size token and the word "talla" out of the model string.
	cleanTitle := tallaRe.ReplaceAllString(rawTitle, " ")
	if rawSize != "" {
		cleanTitle = strings.ReplaceAll(cleanTitle, rawSize, " ")
	}

	brand := m.brands.Normalize(rawBrand)
	model := m.models.Normalize(cleanTitle, brand)
	if model == "" {
		return nil, fmt.Errorf("%w: no identifiable model in %q", ErrSkip, rawTitle)
	}
	productID := signature.Product(brand, model)

	color := m.colors.Normalize(row.Get("color", "colour"))
	if color == normalize.NoColor {
		return nil, fmt.Errorf("%w: no color", ErrSkip)
	}
	gtin := row.Get("gtin", "ean", "barcode")
	variantID := signature.Variant(productID, gtin, color)

	merchantName := row.Get("merchant_name", "merchant")
	if merchantName == "" {
		return nil, fmt.Errorf("%w: missing merchant", ErrSkip)
	}
	price := ParsePrice(row.Get("price", "search_price", "precio"))
	if price <= 0 {
		return nil, fmt.Errorf("%w: non-positive price", ErrSkip)
	}
	merchantID := row.Get("merchant_id")
	merchantKey := signature.MerchantKey(merchantID, merchantName)
	offerID := signature.Offer(variantID, merchantKey, size)

	info := m.extractor.Extract(normalize.Text(rawTitle))
	ageGroup := normalize.AgeGroup(row.Get("age_group", "age", "edad"))

	mainImage := row.Get("image", "image_url", "merchant_image_url")
	images := collectImages(mainImage, row.Get("additional_images", "alternate_image"))

	now := m.now()
	return &Mapped{
		Product: models.Product{
			ID:          productID,
			Brand:       strings.ToUpper(brand),
			Model:       model,
			RawName:     rawTitle,
			Description: row.Get("description"),
			Image:       mainImage,
			Genders:     genderTerms(row.Get("gender", "genero"), info, ageGroup),
			AgeGroup:    ageGroup,
			Surface:     info.Surface,
			Sole:        info.Sole,
		},
		Variant: models.Variant{
			ID:        variantID,
			ProductID: productID,
			Color:     color,
			GTIN:      strings.TrimSpace(gtin),
			ImageMain: mainImage,
			Images:    images,
			Surface:   info.Surface,
			Sizes:     []string{size},
		},
		Offer: models.Offer{
			ID:           offerID,
			VariantID:    variantID,
			MerchantID:   merchantID,
			MerchantName: merchantName,
			Size:         size,
			Price:        price,
			InStock:      true,
			URL:          row.Get("url", "merchant_deep_link", "deep_link"),
			TrackingURL:  row.Get("tracking_url", "aw_deep_link"),
			Currency:     "EUR",
			LastSeenAt:   now,
		},
	}, nil
}

var inStockValues = map[string]struct{}{
	"in stock": {}, "instock": {}, "in_stock": {},
	"disponible": {}, "available": {},
	"1": {}, "true": {}, "yes": {}, "si": {},
}

func availabilityInStock(raw string) bool {
	_, ok := inStockValues[normalize.Text(raw)]
	return ok
}

// ParsePrice handles dot- and comma-decimal formats. When both separators are
// present the dot is a thousands separator and is stripped first.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// genderTerms derives the gender taxonomy terms. Kids products never carry
// gender terms so they stay out of the men's/women's grids; unisex expands to
// both.
func genderTerms(raw string, info extract.Info, ageGroup string) []string {
	if ageGroup == normalize.AgeKids {
		return nil
	}
	switch normalize.Text(raw) {
	case "unisex":
		return []string{"hombre", "mujer"}
	case "female", "mujer", "woman", "women", "f":
		return []string{"mujer"}
	case "male", "hombre", "man", "men", "m":
		return []string{"hombre"}
	}
	if info.Gender == "mujer" {
		return []string{"mujer"}
	}
	return []string{"hombre"}
}

func collectImages(main, additional string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	add(main)
	for _, u := range strings.Split(additional, ",") {
		add(u)
	}
	return out
}
