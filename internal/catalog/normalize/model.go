package normalize

import (
	"regexp"
	"strings"

	"bootfeed/internal/catalog/tables"
)

// Word lists for the generic stripping path. Sizing/surface codes, marketing
// and category nouns that never identify a model.
var (
	junkWords = wordSet(
		"tacos", "taco", "fg", "ag", "sg", "tf", "ic", "hg", "mg",
		"jr", "jnr", "gs", "ps", "td", "talla", "tallas", "velcro", "cordones",
	)
	genderAgeWords = wordSet(
		"hombre", "hombres", "mujer", "mujeres", "nino", "ninos", "nina", "ninas",
		"infantil", "junior", "juniors", "unisex", "adulto", "adultos",
		"kids", "men", "women", "bebe", "youth", "boy", "boys", "girl", "girls",
	)
	marketingWords = wordSet(
		"indoor", "outdoor", "futsal", "sala", "mkp", "multitaco", "moqueta",
		"cesped", "artificial", "natural", "turf", "hierba", "interior", "exterior",
	)
	categoryWords = wordSet(
		"zapatilla", "zapatillas", "zapato", "zapatos", "bota", "botas",
		"botin", "botines", "bambas", "deportiva", "deportivas", "deportivo",
		"calzado", "futbol", "football", "soccer",
	)
	stopWords = wordSet(
		"de", "del", "la", "el", "los", "las", "para", "con", "y", "e",
	)

	yearRe         = regexp.MustCompile(`\b(2[0-9])\b`)
	trailingNumsRe = regexp.MustCompile(`[ ]*[0-9]+$`)
	topFlexRe      = regexp.MustCompile(`\btop flex 25[0-9]{2}\b`)
	shortNumRe     = regexp.MustCompile(`^[0-9]{2,3}$`)
	longNumRe      = regexp.MustCompile(`^([0-9]{3}|[0-9]{4,})$`)
)

// Models derives a canonical model name from a feed title. Whitelist patterns
// from models.json win over free-text parsing; the generic path strips every
// word class that is not model identity and keeps what remains.
type Models struct {
	brands *Brands
	colors *Colors
	rules  map[string][]tables.ModelRule
}

func NewModels(t *tables.Tables, brands *Brands, colors *Colors) *Models {
	rules := map[string][]tables.ModelRule{}
	for brand, rs := range t.Models {
		rules[Text(brand)] = rs
	}
	return &Models{brands: brands, colors: colors, rules: rules}
}

// Normalize returns the canonical uppercase model for rawTitle, or empty when
// no model can be identified, which callers treat as "reject this row".
func (m *Models) Normalize(rawTitle, brand string) string {
	t := Text(rawTitle)
	// Titles commonly append size/SKU info after a dash; keep the head.
	if i := strings.Index(t, "-"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = m.brands.Strip(t)
	// The row's own brand may not be in the alias table yet; strip it too.
	if bw := strings.Fields(Text(brand)); len(bw) > 0 {
		t = strings.Join(removeSeq(strings.Fields(t), bw), " ")
	}

	// Whitelist resolution first: generic stripping can destroy tokens the
	// pattern needs to see.
	if model := m.matchWhitelist(t, brand); model != "" {
		return model
	}

	words := strings.Fields(t)
	words = removeWords(words, junkWords)
	words = removeWords(words, genderAgeWords)
	words = removeWords(words, marketingWords)
	words = removeWords(words, categoryWords)
	words = removeWords(words, stopWords)
	words = m.colors.stripWords(words)
	words = joinLetterDigit(words)

	t = topFlexRe.ReplaceAllString(strings.Join(words, " "), "top flex 25")

	words = strings.Fields(t)
	kept := words[:0]
	for _, w := range words {
		if longNumRe.MatchString(w) {
			continue
		}
		kept = append(kept, strings.Trim(strings.ReplaceAll(w, "_", " "), "-"))
	}
	words = dedupWords(strings.Fields(strings.Join(kept, " ")))

	model := strings.ToUpper(strings.Join(words, " "))
	if model == "" || model == strings.ToUpper(Text(brand)) {
		return ""
	}
	return model
}

func (m *Models) matchWhitelist(text, brand string) string {
	rules := m.rules[Text(brand)]
	if len(rules) == 0 {
		return ""
	}
	// 2-3 digit tokens could be sizes; the patterns must not see them.
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if shortNumRe.MatchString(w) {
			continue
		}
		kept = append(kept, w)
	}
	candidate := strings.Join(kept, " ")

	for _, rule := range rules {
		if !rule.Matches(candidate) {
			continue
		}
		model := rule.Model
		if rule.Year {
			if y := yearRe.FindString(text); y != "" {
				model += " " + y
			}
		}
		if rule.StripTrailingNumbers {
			model = strings.TrimSpace(trailingNumsRe.ReplaceAllString(model, ""))
		}
		return strings.ToUpper(strings.TrimSpace(model))
	}
	return ""
}

// joinLetterDigit glues orphaned single-letter + number pairs back together
// ("s 9" -> "s9"), a common artifact of upstream tokenizing.
func joinLetterDigit(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		if len(w) == 1 && w[0] >= 'a' && w[0] <= 'z' && i+1 < len(words) && isDigits(words[i+1]) {
			out = append(out, w+words[i+1])
			i++
			continue
		}
		out = append(out, w)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
