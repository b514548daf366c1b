package extract

import "strings"

// Inferred holds attributes derived by the secondary inference pass. Callers
// only copy a value into a record when the record's field is still empty.
type Inferred struct {
	Surface     string
	Environment string
	Sole        string
}

var (
	inferSurfaces     = []string{"IC", "TF", "AG", "FG"}
	inferEnvironments = []string{"INDOOR", "OUTDOOR"}
	inferSoles        = []string{"GOMA", "CAUCHO", "TPU", "EVA"}
)

// Infer runs the broad keyword pass over title+description. Unlike the
// config-driven extractor this is a fixed-set substring scan: punctuation is
// flattened to spaces, the text is uppercased and space-padded, and each
// keyword is looked up as a padded substring.
func Infer(title, description string) Inferred {
	text := " " + flatten(title+" "+description) + " "
	return Inferred{
		Surface:     firstContained(text, inferSurfaces),
		Environment: firstContained(text, inferEnvironments),
		Sole:        firstContained(text, inferSoles),
	}
}

func firstContained(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(text, " "+kw+" ") {
			return kw
		}
	}
	return ""
}

func flatten(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
