package normalize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootfeed/internal/catalog/tables"
)

func testModels(t *testing.T) *Models {
	t.Helper()
	tbls := tables.Load(filepath.Join("..", "..", "..", "configs"), nil)
	require.NotEmpty(t, tbls.Models, "repo configs must be loadable")
	brands := NewBrands(tbls.Brands)
	colors := NewColors(tbls.Colors)
	return NewModels(tbls, brands, colors)
}

func TestModelsWhitelist(t *testing.T) {
	m := testModels(t)
	cases := []struct {
		title string
		brand string
		want  string
	}{
		{"Nike Phantom GT Negro", "nike", "PHANTOM GT"},
		{"NIKE PHANTOM GT2 ACADEMY DF FG", "nike", "PHANTOM GT"},
		{"Adidas Predator Elite 24 FG", "adidas", "PREDATOR 24"},
		{"Joma Top Flex Rebound Sala", "joma", "TOP FLEX"},
		{"Mizuno Morelia Neo IV", "mizuno", "MORELIA"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Normalize(tc.title, tc.brand))
		})
	}
}

func TestModelsGenericPath(t *testing.T) {
	m := testModels(t)
	cases := []struct {
		title string
		brand string
		want  string
	}{
		// unknown brand: no whitelist, junk/category/color words stripped
		{"Kappa Botas de fútbol Player Base FG Amarillo", "kappa", "PLAYER BASE"},
		// orphaned letter+digit pairs are glued back
		{"Umbro Speciali s 9 FG", "umbro", "SPECIALI S9"},
		// repeated words collapse, order preserved
		{"Mystic Mystic Falcon Falcon Indoor", "mystic", "FALCON"},
		// SKU-like long numbers are dropped
		{"Kelme Precision 39812 Sala", "kelme", "PRECISION"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Normalize(tc.title, tc.brand))
		})
	}
}

func TestModelsRejection(t *testing.T) {
	m := testModels(t)
	// title equal to brand with nothing else: not a product
	assert.Equal(t, "", m.Normalize("NIKE", "NIKE"))
	assert.Equal(t, "", m.Normalize("", "adidas"))
	// only junk words left
	assert.Equal(t, "", m.Normalize("Kappa botas de futbol FG", "kappa"))
}

func TestModelsHyphenCut(t *testing.T) {
	m := testModels(t)
	// everything after the first hyphen is size/SKU noise
	assert.Equal(t, "PHANTOM GT", m.Normalize("Nike Phantom GT - 8435112233", "nike"))
}

func TestModelsTopFlexCollapse(t *testing.T) {
	m := testModels(t)
	// generic path only: an unknown brand so the whitelist cannot shortcut
	assert.Equal(t, "TOP FLEX 25", m.Normalize("Zapatilla Top Flex 2528", "desconocida"))
}
