package scrape

import (
	"regexp"
	"strings"
)

// genericHeadlines are titles that mark a landing page scraped by mistake.
var genericHeadlines = map[string]struct{}{
	"newsnews": {},
	"news":     {},
	"bbc news": {},
}

// boilerplateExpr rejects body text carrying navigation chrome, matched
// as whole words, case-insensitively.
var boilerplateExpr = regexp.MustCompile(`(?i)\b(?:home|skip to content|bbc homepage|news)\b`)

// QualityGate decides whether an extracted record is worth keeping.
// Collection and cleaning both apply it, with their own thresholds.
type QualityGate struct {
	MinHeadlineChars int
	MinBodyWords     int
}

// Check returns false with a short reason when the record fails any rule.
func (g QualityGate) Check(headline, bodyPreview string) (bool, string) {
	headline = strings.TrimSpace(headline)
	bodyPreview = strings.TrimSpace(bodyPreview)

	if headline == "" {
		return false, "empty headline"
	}
	if _, generic := genericHeadlines[strings.ToLower(headline)]; generic {
		return false, "generic headline"
	}
	if len(headline) < g.MinHeadlineChars {
		return false, "headline too short"
	}
	if len(strings.Fields(bodyPreview)) < g.MinBodyWords {
		return false, "body too short"
	}
	if boilerplateExpr.MatchString(bodyPreview) {
		return false, "navigation boilerplate"
	}
	return true, ""
}
