package scrape

import (
	"strings"
	"testing"
)

func TestQualityGate(t *testing.T) {
	t.Parallel()

	gate := QualityGate{MinHeadlineChars: 8, MinBodyWords: 5}
	longBody := strings.Repeat("word ", 10)

	cases := []struct {
		name     string
		headline string
		body     string
		want     bool
	}{
		{"valid", "Markets rally on rate cut", longBody, true},
		{"empty headline", "", longBody, false},
		{"generic headline", "NewsNews", longBody, false},
		{"generic headline mixed case", "BBC News", longBody, false},
		{"short headline", "Markets", longBody, false},
		{"short body", "Markets rally on rate cut", "too few words", false},
		{"boilerplate home", "Markets rally on rate cut", longBody + "Skip to content please", false},
		{"boilerplate whole word", "Markets rally on rate cut", longBody + "the Home page", false},
		{"boilerplate substring ok", "Markets rally on rate cut", longBody + "households and homework", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, reason := gate.Check(tc.headline, tc.body)
			if got != tc.want {
				t.Fatalf("Check(%q, %q) = %v (%s), want %v", tc.headline, tc.body, got, reason, tc.want)
			}
		})
	}
}
