package extract

import (
	"regexp"
	"sort"

	"bootfeed/internal/catalog/tables"
)

// Info carries the secondary attributes derived from a product title.
type Info struct {
	Gender  string
	Surface string
	Sole    string
}

// genderPriority: first matching category wins. Unspecified defaults to
// "hombre" (unisex/unknown listings land in the men's grid).
var genderPriority = []string{"infantil", "mujer", "hombre"}

const GenderDefault = "hombre"

type keywordRule struct {
	canonical string
	res       []*regexp.Regexp
}

// Extractor matches normalized title text against the JSON-configured keyword
// tables for gender, surface and sole.
type Extractor struct {
	genders  map[string][]*regexp.Regexp
	surfaces []keywordRule
	soles    []keywordRule
}

func NewExtractor(t *tables.Tables) *Extractor {
	return &Extractor{
		genders:  compileMap(t.Genders),
		surfaces: compileRules(t.Surfaces),
		soles:    compileRules(t.Soles),
	}
}

// Extract derives gender/surface/sole from already-normalized title text.
// Surface and sole stay empty when nothing matches; gender always resolves.
func (e *Extractor) Extract(normTitle string) Info {
	info := Info{Gender: GenderDefault}
	for _, category := range genderPriority {
		if matchAny(e.genders[category], normTitle) {
			info.Gender = category
			break
		}
	}
	for _, rule := range e.surfaces {
		if matchAny(rule.res, normTitle) {
			info.Surface = rule.canonical
			break
		}
	}
	for _, rule := range e.soles {
		if matchAny(rule.res, normTitle) {
			info.Sole = rule.canonical
			break
		}
	}
	return info
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func compileMap(table map[string][]string) map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(table))
	for canonical, keywords := range table {
		out[canonical] = compileKeywords(keywords)
	}
	return out
}

func compileRules(table map[string][]string) []keywordRule {
	canonicals := make([]string, 0, len(table))
	for c := range table {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)
	rules := make([]keywordRule, 0, len(canonicals))
	for _, c := range canonicals {
		rules = append(rules, keywordRule{canonical: c, res: compileKeywords(table[c])})
	}
	return rules
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		res = append(res, re)
	}
	return res
}
