package domain

import (
	"testing"
	"time"
)

func TestLabelFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		compound float64
		want     SentimentLabel
	}{
		{0.05, LabelPositive},
		{-0.05, LabelNegative},
		{0.0, LabelNeutral},
		{0.049, LabelNeutral},
		{-0.049, LabelNeutral},
		{0.9, LabelPositive},
		{-0.9, LabelNegative},
	}

	for _, tc := range cases {
		if got := LabelFor(tc.compound); got != tc.want {
			t.Errorf("LabelFor(%v) = %s, want %s", tc.compound, got, tc.want)
		}
	}
}

func TestPublishedDate(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, time.March, 14, 23, 30, 0, 0, time.UTC)
	rec := ArticleRecord{PublishedAt: &when}
	if got := rec.PublishedDate(); got != "2025-03-14" {
		t.Fatalf("PublishedDate() = %q", got)
	}

	if got := (ArticleRecord{}).PublishedDate(); got != "" {
		t.Fatalf("expected empty date for absent timestamp, got %q", got)
	}
}

func TestBodyWordCount(t *testing.T) {
	t.Parallel()

	rec := ArticleRecord{BodyPreview: "  three  little words "}
	if got := rec.BodyWordCount(); got != 3 {
		t.Fatalf("BodyWordCount() = %d", got)
	}
}
