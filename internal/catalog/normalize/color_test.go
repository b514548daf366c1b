package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testColors() *Colors {
	return NewColors(map[string][]string{
		// "azul" deliberately listed before "azul marino": specificity must
		// win, not table order.
		"azul":        {"azul", "blue"},
		"azul marino": {"azul marino", "marino", "navy"},
		"negro":       {"negro", "negra", "black"},
		"rojo":        {"rojo", "red"},
	})
}

func TestColorsNormalize(t *testing.T) {
	colors := testColors()
	cases := []struct {
		in   string
		want string
	}{
		{"Negro", "NEGRO"},
		{"negra", "NEGRO"},
		{"BLACK", "NEGRO"},
		{"azul marino", "AZUL MARINO"},
		{"Azul Marino - Blanco", "AZUL MARINO"},
		{"navy", "AZUL MARINO"},
		{"azul", "AZUL"},
		{"turquesa", "TURQUESA"}, // unknown passes through
		{"", NoColor},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, colors.Normalize(tc.in))
		})
	}
}

func TestColorsStripFromModel(t *testing.T) {
	colors := testColors()
	assert.Equal(t, "PHANTOM GT", colors.StripFromModel("phantom gt negro azul marino"))
	assert.Equal(t, "TOP FLEX", colors.StripFromModel("top flex rojo"))
	assert.Equal(t, "", colors.StripFromModel("negro"))
}

func TestBrandsNormalize(t *testing.T) {
	brands := NewBrands(map[string][]string{
		"joma":        {"joma sport", "joma sports"},
		"new balance": {"nb", "newbalance"},
		"nike":        {},
	})

	assert.Equal(t, "joma", brands.Normalize("Joma Sport"))
	assert.Equal(t, "joma", brands.Normalize("JOMA SPORTS"))
	assert.Equal(t, "new balance", brands.Normalize("NB"))
	assert.Equal(t, "nike", brands.Normalize("Nike"))
	// unmapped input passes through
	assert.Equal(t, "kappa", brands.Normalize("Kappa"))
}

func TestBrandsStrip(t *testing.T) {
	brands := NewBrands(map[string][]string{
		"nike":        {},
		"new balance": {"newbalance"},
	})

	assert.Equal(t, "phantom gt", brands.Strip("nike phantom gt"))
	assert.Equal(t, "furon v7", brands.Strip("new balance furon v7"))
	// glued prefix
	assert.Equal(t, "phantom", brands.Strip("nikephantom"))
}
