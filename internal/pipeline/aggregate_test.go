package pipeline

import (
	"math"
	"testing"
	"time"

	"newspulse/internal/domain"
)

func scoredRecord(section, date string, headline, body float64) domain.ScoredRecord {
	rec := domain.ScoredRecord{
		ArticleRecord: domain.ArticleRecord{URL: section + date, Section: section},
		HeadlineScore: headline,
		BodyScore:     body,
		ScoreDelta:    headline - body,
	}
	if date != "" {
		parsed, _ := time.Parse("2006-01-02", date)
		utc := parsed.UTC()
		rec.PublishedAt = &utc
	}
	return rec
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeBySection(t *testing.T) {
	t.Parallel()

	records := []domain.ScoredRecord{
		scoredRecord("world", "2025-06-01", 0.2, 0.1),
		scoredRecord("world", "2025-06-02", 0.4, 0.3),
		scoredRecord("business", "2025-06-01", -0.5, 0.5),
	}

	summaries := SummarizeBySection(records)

	if len(summaries) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(summaries))
	}

	// Larger section first.
	world := summaries[0]
	if world.Section != "world" || world.Articles != 2 {
		t.Fatalf("unexpected first summary: %+v", world)
	}
	if !almostEqual(world.MeanHeadline, 0.3) {
		t.Fatalf("MeanHeadline = %v, want 0.3", world.MeanHeadline)
	}
	if !almostEqual(world.MeanBody, 0.2) {
		t.Fatalf("MeanBody = %v, want 0.2", world.MeanBody)
	}
	if !almostEqual(world.MeanDelta, 0.1) {
		t.Fatalf("MeanDelta = %v, want 0.1", world.MeanDelta)
	}
	// Sample stddev of {0.2, 0.4}.
	if !almostEqual(world.StdHeadline, math.Sqrt(0.02)) {
		t.Fatalf("StdHeadline = %v, want %v", world.StdHeadline, math.Sqrt(0.02))
	}

	business := summaries[1]
	if business.Section != "business" || business.Articles != 1 {
		t.Fatalf("unexpected second summary: %+v", business)
	}
	if business.StdHeadline != 0 || business.StdBody != 0 {
		t.Fatalf("single-row section should carry zero stddev: %+v", business)
	}
}

func TestSummarizeByDay(t *testing.T) {
	t.Parallel()

	records := []domain.ScoredRecord{
		scoredRecord("world", "2025-06-02", 0.4, 0.2),
		scoredRecord("world", "2025-06-01", 0.2, 0.0),
		scoredRecord("world", "2025-06-01", 0.0, 0.2),
		scoredRecord("business", "2025-06-01", 0.1, 0.1),
		scoredRecord("world", "", 0.9, 0.9), // no date: excluded
	}

	summaries := SummarizeByDay(records)

	if len(summaries) != 3 {
		t.Fatalf("expected 3 (date, section) groups, got %d", len(summaries))
	}

	// Sorted by section, then date, ascending.
	if summaries[0].Section != "business" {
		t.Fatalf("unexpected order: %+v", summaries)
	}
	if summaries[1].Section != "world" || summaries[1].Date != "2025-06-01" {
		t.Fatalf("unexpected order: %+v", summaries)
	}
	if summaries[2].Date != "2025-06-02" {
		t.Fatalf("unexpected order: %+v", summaries)
	}

	june1 := summaries[1]
	if june1.Articles != 2 {
		t.Fatalf("expected 2 articles on 2025-06-01, got %d", june1.Articles)
	}
	if !almostEqual(june1.MeanHeadline, 0.1) || !almostEqual(june1.MeanBody, 0.1) {
		t.Fatalf("unexpected means: %+v", june1)
	}
}
