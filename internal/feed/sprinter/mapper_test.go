package sprinter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootfeed/internal/catalog/extract"
	"bootfeed/internal/catalog/tables"
	"bootfeed/internal/feed"
)

func testMapper(t *testing.T) *Mapper {
	t.Helper()
	tbls := tables.Load(filepath.Join("..", "..", "..", "configs"), nil)
	require.NotEmpty(t, tbls.Brands)
	return NewMapper(tbls)
}

func baseRow() feed.Row {
	return feed.Row{
		"brand":         "Nike",
		"title":         "Nike Phantom GT Negro Talla 42",
		"color":         "Negro",
		"size":          "42",
		"price":         "89.99",
		"availability":  "in stock",
		"gtin":          "",
		"merchant_name": "Sprinter",
		"url":           "https://example.test/phantom-gt",
		"image":         "https://example.test/phantom-gt.jpg",
	}
}

func TestMapHappyPath(t *testing.T) {
	m := testMapper(t)
	mapped, err := m.Map(baseRow())
	require.NoError(t, err)

	assert.Equal(t, "NIKE", mapped.Product.Brand)
	assert.Equal(t, "PHANTOM GT", mapped.Product.Model)
	assert.Equal(t, "Nike Phantom GT Negro Talla 42", mapped.Product.RawName)

	assert.Equal(t, "NEGRO", mapped.Variant.Color)
	assert.Equal(t, mapped.Product.ID, mapped.Variant.ProductID)

	assert.Equal(t, "42", mapped.Offer.Size)
	assert.Equal(t, 89.99, mapped.Offer.Price)
	assert.True(t, mapped.Offer.InStock)
	assert.Equal(t, "EUR", mapped.Offer.Currency)
	assert.Equal(t, mapped.Variant.ID, mapped.Offer.VariantID)
}

func TestMapIsDeterministic(t *testing.T) {
	m := testMapper(t)
	first, err := m.Map(baseRow())
	require.NoError(t, err)
	second, err := m.Map(baseRow())
	require.NoError(t, err)

	assert.Equal(t, first.Product.ID, second.Product.ID)
	assert.Equal(t, first.Variant.ID, second.Variant.ID)
	assert.Equal(t, first.Offer.ID, second.Offer.ID)
}

func TestMapGTINWinsOverColor(t *testing.T) {
	m := testMapper(t)
	rowA := baseRow()
	rowA["gtin"] = "8435112233441"
	rowB := baseRow()
	rowB["gtin"] = "8435112233441"
	rowB["color"] = "Blanco"

	a, err := m.Map(rowA)
	require.NoError(t, err)
	b, err := m.Map(rowB)
	require.NoError(t, err)
	assert.Equal(t, a.Variant.ID, b.Variant.ID)
}

func TestMapRejections(t *testing.T) {
	m := testMapper(t)
	cases := []struct {
		name   string
		mutate func(feed.Row)
	}{
		{"missing brand", func(r feed.Row) { r["brand"] = "" }},
		{"missing title", func(r feed.Row) { r["title"] = "" }},
		{"out of stock", func(r feed.Row) { r["availability"] = "out of stock" }},
		{"invalid size", func(r feed.Row) { r["size"] = "XL" }},
		{"below size range", func(r feed.Row) { r["size"] = "31" }},
		{"no color", func(r feed.Row) { r["color"] = "" }},
		{"missing merchant", func(r feed.Row) { r["merchant_name"] = "" }},
		{"zero price", func(r feed.Row) { r["price"] = "0" }},
		{"garbage price", func(r feed.Row) { r["price"] = "n/a" }},
		{"title is just the brand", func(r feed.Row) { r["title"] = "Nike" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := baseRow()
			tc.mutate(row)
			_, err := m.Map(row)
			assert.ErrorIs(t, err, ErrSkip)
		})
	}
}

func TestMapSizelessProduct(t *testing.T) {
	m := testMapper(t)
	row := baseRow()
	row["size"] = ""
	row["title"] = "Nike Phantom GT Negro"

	mapped, err := m.Map(row)
	require.NoError(t, err)
	assert.Equal(t, "UNICA", mapped.Offer.Size)
}

func TestMapKidsGenderSuppression(t *testing.T) {
	m := testMapper(t)

	row := baseRow()
	row["age_group"] = "kids"
	row["gender"] = "male"
	mapped, err := m.Map(row)
	require.NoError(t, err)
	assert.Equal(t, "kids", mapped.Product.AgeGroup)
	assert.Empty(t, mapped.Product.Genders)

	row = baseRow()
	row["age_group"] = "adult"
	row["gender"] = "unisex"
	mapped, err = m.Map(row)
	require.NoError(t, err)
	assert.Equal(t, []string{"hombre", "mujer"}, mapped.Product.Genders)

	row = baseRow()
	row["gender"] = "female"
	mapped, err = m.Map(row)
	require.NoError(t, err)
	assert.Equal(t, []string{"mujer"}, mapped.Product.Genders)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"89.99", 89.99},
		{"89,99", 89.99},
		{"1.299,50", 1299.50},
		{"1299.50", 1299.50},
		{"89.99 EUR", 89.99},
		{"", 0},
		{"gratis", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePrice(tc.in))
		})
	}
}

func TestApplyInferenceFillsOnlyEmpty(t *testing.T) {
	mapped := &Mapped{}
	mapped.Variant.Surface = "FG"
	mapped.Product.Surface = "FG"

	mapped.ApplyInference(extract.Inferred{Surface: "IC", Environment: "INDOOR", Sole: "GOMA"})

	assert.Equal(t, "FG", mapped.Variant.Surface)
	assert.Equal(t, "FG", mapped.Product.Surface)
	assert.Equal(t, "INDOOR", mapped.Product.Environment)
	assert.Equal(t, "GOMA", mapped.Product.Sole)
}

func TestMapImages(t *testing.T) {
	m := testMapper(t)
	row := baseRow()
	row["additional_images"] = "https://example.test/a.jpg, https://example.test/phantom-gt.jpg ,https://example.test/b.jpg"

	mapped, err := m.Map(row)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.test/phantom-gt.jpg",
		"https://example.test/a.jpg",
		"https://example.test/b.jpg",
	}, mapped.Variant.Images)
}
