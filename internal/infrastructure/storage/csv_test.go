package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newspulse/internal/domain"
)

func TestCSVSinkWritesHeaderOnceAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "articles_metadata.csv")

	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	if err := sink.Append(domain.ArticleRecord{
		URL:      "https://www.bbc.com/news/articles/abc123",
		Section:  "world",
		Headline: "First",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen and append again: header must not repeat.
	sink, err = NewCSVSink(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := sink.Append(domain.ArticleRecord{
		URL:      "https://www.bbc.com/news/articles/def456",
		Section:  "world",
		Headline: "Second",
	}); err != nil {
		t.Fatalf("Append after reopen: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close after reopen: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.Count(string(raw), "url,section,"); got != 1 {
		t.Fatalf("expected a single header line, found %d", got)
	}

	records, err := ReadArticleTable(path)
	if err != nil {
		t.Fatalf("ReadArticleTable: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Headline != "First" || records[1].Headline != "Second" {
		t.Fatalf("unexpected rows: %+v", records)
	}
}

func TestArticleTableRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "articles_clean.csv")

	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []domain.ArticleRecord{
		{
			URL:             "https://www.bbc.com/news/articles/abc123",
			Section:         "world",
			PublishedAtRaw:  "2025-03-14T09:30:00Z",
			PublishedAt:     &ts,
			Headline:        "Talks resume, officials say",
			BodyPreview:     "Delegates met for a second day of talks.",
			RawDocumentPath: "raw/world_abc123.html",
		},
		{
			URL:      "https://www.bbc.com/news/articles/def456",
			Section:  "business",
			Headline: "Markets steady",
		},
	}

	if err := WriteArticleTable(path, records); err != nil {
		t.Fatalf("WriteArticleTable: %v", err)
	}

	got, err := ReadArticleTable(path)
	if err != nil {
		t.Fatalf("ReadArticleTable: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	first := got[0]
	if first.URL != records[0].URL || first.Headline != records[0].Headline {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(ts) {
		t.Fatalf("timestamp not re-parsed: %+v", first.PublishedAt)
	}
	if first.PublishedDate() != "2025-03-14" {
		t.Fatalf("PublishedDate = %q", first.PublishedDate())
	}

	second := got[1]
	if second.PublishedAt != nil || second.PublishedAtRaw != "" {
		t.Fatalf("expected no timestamp on second record: %+v", second)
	}
}

func TestScoredTableRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "articles_scored.csv")

	records := []domain.ScoredRecord{
		{
			ArticleRecord: domain.ArticleRecord{
				URL:            "https://www.bbc.com/news/articles/abc123",
				Section:        "world",
				PublishedAtRaw: "2025-03-14T09:30:00Z",
				Headline:       "Talks resume",
				BodyPreview:    "Delegates met again.",
			},
			HeadlineScore: 0.4215,
			BodyScore:     -0.1027,
			HeadlineLabel: domain.LabelPositive,
			BodyLabel:     domain.LabelNegative,
			ScoreDelta:    0.5242,
		},
	}

	if err := WriteScoredTable(path, records); err != nil {
		t.Fatalf("WriteScoredTable: %v", err)
	}

	got, err := ReadScoredTable(path)
	if err != nil {
		t.Fatalf("ReadScoredTable: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	rec := got[0]
	if rec.HeadlineScore != 0.4215 || rec.BodyScore != -0.1027 {
		t.Fatalf("scores lost precision: %+v", rec)
	}
	if rec.HeadlineLabel != domain.LabelPositive || rec.BodyLabel != domain.LabelNegative {
		t.Fatalf("labels did not survive: %+v", rec)
	}
	if rec.ScoreDelta != 0.5242 {
		t.Fatalf("ScoreDelta = %v", rec.ScoreDelta)
	}
	if rec.PublishedAt == nil {
		t.Fatal("timestamp not re-parsed")
	}
}

func TestSummaryTablesRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	sections := []domain.SectionSummary{
		{Section: "world", Articles: 12, MeanHeadline: 0.05, MeanBody: -0.01, MeanDelta: 0.06, StdHeadline: 0.2, StdBody: 0.15},
	}
	sectionPath := filepath.Join(dir, "summary_section.csv")
	if err := WriteSectionSummaries(sectionPath, sections); err != nil {
		t.Fatalf("WriteSectionSummaries: %v", err)
	}
	gotSections, err := ReadSectionSummaries(sectionPath)
	if err != nil {
		t.Fatalf("ReadSectionSummaries: %v", err)
	}
	if len(gotSections) != 1 || gotSections[0] != sections[0] {
		t.Fatalf("section summaries did not round-trip: %+v", gotSections)
	}

	daily := []domain.DailySummary{
		{Date: "2025-06-01", Section: "world", Articles: 3, MeanHeadline: 0.1, MeanBody: 0.0, MeanDelta: 0.1},
	}
	dailyPath := filepath.Join(dir, "summary_time.csv")
	if err := WriteDailySummaries(dailyPath, daily); err != nil {
		t.Fatalf("WriteDailySummaries: %v", err)
	}
	gotDaily, err := ReadDailySummaries(dailyPath)
	if err != nil {
		t.Fatalf("ReadDailySummaries: %v", err)
	}
	if len(gotDaily) != 1 || gotDaily[0] != daily[0] {
		t.Fatalf("daily summaries did not round-trip: %+v", gotDaily)
	}
}
