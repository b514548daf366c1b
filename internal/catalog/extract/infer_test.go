package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        Inferred
	}{
		{
			name:  "surface code in title",
			title: "Nike Phantom GT FG",
			want:  Inferred{Surface: "FG"},
		},
		{
			name:        "environment and sole from description",
			title:       "Joma Top Flex",
			description: "Zapatilla indoor con suela de goma.",
			want:        Inferred{Environment: "INDOOR", Sole: "GOMA"},
		},
		{
			name:  "punctuation is flattened",
			title: "Mercurial Vapor (TF)",
			want:  Inferred{Surface: "TF"},
		},
		{
			name:  "no substring false positives",
			title: "Perfect Training",
			want:  Inferred{},
		},
		{
			name: "empty",
			want: Inferred{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Infer(tc.title, tc.description))
		})
	}
}
