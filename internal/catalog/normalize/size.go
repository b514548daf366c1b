package normalize

import (
	"regexp"
	"strings"
)

// SizeOneSize is the sentinel size for products sold without sizing.
const SizeOneSize = "UNICA"

// EU shoe sizes 32-50, optional half size. 50.5 is out of range, 49.5 is not.
var sizeRe = regexp.MustCompile(`^((3[2-9]|4[0-9])(\.5)?|50)$`)

// Size validates a feed size value against the EU shoe range, accepting comma
// decimals ("40,5" -> "40.5"). Anything else returns empty: garbage is
// rejected, never guessed at.
func Size(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	s = strings.TrimSuffix(s, ".0")
	if !sizeRe.MatchString(s) {
		return ""
	}
	return s
}
