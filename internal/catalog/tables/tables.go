package tables

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"bootfeed/internal/logger"
)

// ModelRule is one whitelist entry from models.json: a canonical model name
// plus the pattern that recognizes it inside a cleaned-up feed title.
type ModelRule struct {
	Model                string `json:"model"`
	Pattern              string `json:"pattern"`
	Year                 bool   `json:"year"`
	StripTrailingNumbers bool   `json:"strip_trailing_numbers"`

	re *regexp.Regexp
}

func (r *ModelRule) Matches(text string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(text)
}

// Tables holds every JSON-configured lookup the normalizers depend on.
// All maps are canonical value -> recognized spellings/keywords.
type Tables struct {
	Brands   map[string][]string
	Colors   map[string][]string
	Genders  map[string][]string
	Surfaces map[string][]string
	Soles    map[string][]string
	Models   map[string][]ModelRule
}

// Load reads the table files from dir. A missing or malformed file degrades to
// an empty table with a warning; Load never fails.
func Load(dir string, log *logger.Logger) *Tables {
	t := &Tables{
		Brands:   map[string][]string{},
		Colors:   map[string][]string{},
		Genders:  map[string][]string{},
		Surfaces: map[string][]string{},
		Soles:    map[string][]string{},
		Models:   map[string][]ModelRule{},
	}

	t.Brands = loadJSON(filepath.Join(dir, "brands.json"), t.Brands, log)
	t.Colors = loadJSON(filepath.Join(dir, "colors.json"), t.Colors, log)
	t.Genders = loadJSON(filepath.Join(dir, "genders.json"), t.Genders, log)
	t.Surfaces = loadJSON(filepath.Join(dir, "surfaces.json"), t.Surfaces, log)
	t.Soles = loadJSON(filepath.Join(dir, "soles.json"), t.Soles, log)
	t.Models = loadJSON(filepath.Join(dir, "models.json"), t.Models, log)

	for brand, rules := range t.Models {
		compiled := rules[:0]
		for _, rule := range rules {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				if log != nil {
					log.Warn("models.json: bad pattern %q for %s/%s: %v", rule.Pattern, brand, rule.Model, err)
				}
				continue
			}
			rule.re = re
			compiled = append(compiled, rule)
		}
		t.Models[brand] = compiled
	}

	return t
}

// loadJSON returns the decoded table, or the (empty) fallback when the file is
// missing or malformed. Matching degrades, the process never aborts.
func loadJSON[T any](path string, fallback T, log *logger.Logger) T {
	data, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("config table %s not loaded: %v", path, err)
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		if log != nil {
			log.Warn("config table %s malformed: %v", path, err)
		}
		return fallback
	}
	return v
}
