package normalize

import (
	"sort"
	"strings"
)

// NoColor is the sentinel for rows where no color could be resolved. Variants
// carrying it are rejected by the importer.
const NoColor = "SIN_COLOR"

type colorRule struct {
	canonical string
	words     []string
}

// Colors maps the many feed spellings of a color ("navy", "marino") onto one
// canonical name ("AZUL MARINO"). Candidates are matched most-specific first
// (token count, then length), so "azul marino" always beats a bare "azul"
// regardless of table order.
type Colors struct {
	rules []colorRule
}

func NewColors(table map[string][]string) *Colors {
	c := &Colors{}
	for canonical, variants := range table {
		canon := strings.ToUpper(Text(canonical))
		if canon == "" {
			continue
		}
		seen := map[string]struct{}{}
		for _, v := range append([]string{canonical}, variants...) {
			v = Text(v)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			c.rules = append(c.rules, colorRule{canonical: canon, words: strings.Fields(v)})
		}
	}
	sort.Slice(c.rules, func(i, j int) bool {
		a, b := c.rules[i], c.rules[j]
		if len(a.words) != len(b.words) {
			return len(a.words) > len(b.words)
		}
		al, bl := len(strings.Join(a.words, " ")), len(strings.Join(b.words, " "))
		if al != bl {
			return al > bl
		}
		return strings.Join(a.words, " ") < strings.Join(b.words, " ")
	})
	return c
}

// Normalize resolves raw color text to its canonical uppercase name. Unknown
// color words pass through uppercased rather than being lost; empty input
// resolves to NoColor.
func (c *Colors) Normalize(raw string) string {
	t := Text(raw)
	if t == "" {
		return NoColor
	}
	words := strings.Fields(t)
	for _, r := range c.rules {
		if indexSeq(words, r.words) >= 0 {
			return r.canonical
		}
	}
	return strings.ToUpper(t)
}

// StripFromModel removes every known color spelling from model text so colors
// never leak into model identity. Result is collapsed and uppercased.
func (c *Colors) StripFromModel(text string) string {
	return strings.ToUpper(strings.Join(c.stripWords(strings.Fields(Text(text))), " "))
}

func (c *Colors) stripWords(words []string) []string {
	for _, r := range c.rules {
		words = removeSeq(words, r.words)
	}
	return words
}
