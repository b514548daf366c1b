package normalize

import "strings"

const (
	AgeAdult = "adult"
	AgeKids  = "kids"
)

var kidsWords = wordSet(
	"kids", "kid", "junior", "juniors", "jr", "jnr",
	"nino", "ninos", "nina", "ninas", "infantil", "infant",
	"child", "children", "youth", "boy", "boys", "girl", "girls", "bebe",
)

// AgeGroup collapses feed age text to exactly AgeAdult or AgeKids. Anything
// that is not recognizably a kids value, including empty input, is adult.
func AgeGroup(raw string) string {
	for _, w := range strings.Fields(Text(raw)) {
		if _, ok := kidsWords[w]; ok {
			return AgeKids
		}
	}
	return AgeAdult
}
