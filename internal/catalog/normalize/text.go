package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	diacritics  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	unsafeChars = regexp.MustCompile(`[^a-z0-9 _-]`)
	spaceRuns   = regexp.MustCompile(` +`)
)

// Text canonicalizes free feed text: lowercase, diacritics stripped ("á"->"a"),
// every character outside [a-z0-9 _-] removed, whitespace collapsed, trimmed.
// Total function: never fails, empty in means empty out.
func Text(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(diacritics, s); err == nil {
		s = out
	}
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
	s = unsafeChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// indexSeq returns the index of the first occurrence of seq as consecutive
// words inside words, or -1.
func indexSeq(words, seq []string) int {
	if len(seq) == 0 || len(seq) > len(words) {
		return -1
	}
	for i := 0; i+len(seq) <= len(words); i++ {
		match := true
		for j := range seq {
			if words[i+j] != seq[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// removeSeq removes every occurrence of seq as consecutive words.
func removeSeq(words, seq []string) []string {
	for {
		i := indexSeq(words, seq)
		if i < 0 {
			return words
		}
		words = append(words[:i:i], words[i+len(seq):]...)
	}
}

// removeWords drops every word contained in drop, preserving order.
func removeWords(words []string, drop map[string]struct{}) []string {
	out := words[:0]
	for _, w := range words {
		if _, ok := drop[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// dedupWords drops repeated words, keeping the first occurrence order.
func dedupWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
