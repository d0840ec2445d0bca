package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"newspulse/internal/ports"
)

// VADERScorer scores text with the VADER polarity lexicon. The lexicon
// is fixed and loaded once; scoring keeps no per-run state.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ ports.SentimentScorer = (*VADERScorer)(nil)

// NewVADERScorer loads the built-in lexicon.
func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity score in [-1, 1].
// Empty or whitespace-only text scores exactly zero.
func (s *VADERScorer) Compound(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}
