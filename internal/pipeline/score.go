package pipeline

import (
	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

// Score enriches every cleaned record with independent compound scores
// for the headline and body preview. Pure enrichment: no row is dropped.
func Score(records []domain.ArticleRecord, scorer ports.SentimentScorer) []domain.ScoredRecord {
	scored := make([]domain.ScoredRecord, 0, len(records))
	for _, rec := range records {
		headline := scorer.Compound(rec.Headline)
		body := scorer.Compound(rec.BodyPreview)

		scored = append(scored, domain.ScoredRecord{
			ArticleRecord: rec,
			HeadlineScore: headline,
			BodyScore:     body,
			HeadlineLabel: domain.LabelFor(headline),
			BodyLabel:     domain.LabelFor(body),
			ScoreDelta:    headline - body,
		})
	}
	return scored
}
