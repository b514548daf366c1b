package normalize

import (
	"sort"
	"strings"
)

// Brands collapses known brand-name variants onto one canonical spelling
// ("joma sport", "joma sports" -> "joma"). Unknown brands pass through.
type Brands struct {
	aliases map[string]string
	// every known spelling, longest first, for stripping brand words
	// out of titles
	tokens []string
}

func NewBrands(table map[string][]string) *Brands {
	b := &Brands{aliases: map[string]string{}}
	for canonical, variants := range table {
		c := Text(canonical)
		if c == "" {
			continue
		}
		b.aliases[c] = c
		for _, v := range variants {
			if v := Text(v); v != "" {
				b.aliases[v] = c
			}
		}
	}
	for alias := range b.aliases {
		b.tokens = append(b.tokens, alias)
	}
	sort.Slice(b.tokens, func(i, j int) bool {
		if len(b.tokens[i]) != len(b.tokens[j]) {
			return len(b.tokens[i]) > len(b.tokens[j])
		}
		return b.tokens[i] < b.tokens[j]
	})
	return b
}

func (b *Brands) Normalize(raw string) string {
	t := Text(raw)
	if c, ok := b.aliases[t]; ok {
		return c
	}
	return t
}

// Strip removes every known brand spelling from already-normalized text, both
// as whole words and as a glued prefix ("nikephantom" -> "phantom").
func (b *Brands) Strip(text string) string {
	words := strings.Fields(text)
	for _, alias := range b.tokens {
		words = removeSeq(words, strings.Fields(alias))
	}
	for i, w := range words {
		for _, alias := range b.tokens {
			if strings.Contains(alias, " ") || len(alias) < 3 {
				continue
			}
			if strings.HasPrefix(w, alias) && len(w) > len(alias) {
				words[i] = strings.TrimPrefix(w, alias)
				break
			}
		}
	}
	return strings.Join(words, " ")
}
