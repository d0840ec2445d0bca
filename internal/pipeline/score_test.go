package pipeline

import (
	"testing"

	"newspulse/internal/domain"
)

// stubScorer maps exact text to a fixed compound score.
type stubScorer struct {
	scores map[string]float64
}

func (s stubScorer) Compound(text string) float64 {
	return s.scores[text]
}

func TestScoreEnrichesWithoutDropping(t *testing.T) {
	t.Parallel()

	records := []domain.ArticleRecord{
		{URL: "u1", Section: "world", Headline: "great outcome", BodyPreview: "terrible details"},
		{URL: "u2", Section: "world", Headline: "", BodyPreview: ""},
	}

	scorer := stubScorer{scores: map[string]float64{
		"great outcome":    0.6,
		"terrible details": -0.4,
	}}

	scored := Score(records, scorer)

	if len(scored) != len(records) {
		t.Fatalf("scoring must not drop rows: got %d, want %d", len(scored), len(records))
	}

	first := scored[0]
	if first.HeadlineScore != 0.6 || first.BodyScore != -0.4 {
		t.Fatalf("unexpected scores: %+v", first)
	}
	if first.HeadlineLabel != domain.LabelPositive || first.BodyLabel != domain.LabelNegative {
		t.Fatalf("unexpected labels: %+v", first)
	}
	if delta := first.ScoreDelta; delta != 1.0 {
		t.Fatalf("ScoreDelta = %v, want 1.0", delta)
	}

	second := scored[1]
	if second.HeadlineScore != 0 || second.BodyScore != 0 {
		t.Fatalf("empty text should score zero: %+v", second)
	}
	if second.HeadlineLabel != domain.LabelNeutral || second.BodyLabel != domain.LabelNeutral {
		t.Fatalf("zero scores should label neutral: %+v", second)
	}
}
