package storage

import (
	"context"
	"path/filepath"
	"testing"

	"newspulse/internal/domain"
)

func TestSQLiteLedgerRecordAndCollected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crawl_ledger.db")

	ledger, err := OpenSQLiteLedger(path)
	if err != nil {
		t.Fatalf("OpenSQLiteLedger: %v", err)
	}
	defer ledger.Close()

	ctx := context.Background()

	collected, err := ledger.Collected(ctx)
	if err != nil {
		t.Fatalf("Collected on empty ledger: %v", err)
	}
	if len(collected) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(collected))
	}

	rec := domain.ArticleRecord{
		URL:             "https://www.bbc.com/news/articles/abc123",
		Section:         "world",
		RawDocumentPath: "raw/world_abc123.html",
	}
	if err := ledger.Record(ctx, rec, "abc123"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Re-recording the same URL must not error.
	if err := ledger.Record(ctx, rec, "abc123"); err != nil {
		t.Fatalf("Record duplicate: %v", err)
	}

	other := domain.ArticleRecord{
		URL:             "https://www.bbc.com/news/articles/def456",
		Section:         "business",
		RawDocumentPath: "raw/business_def456.html",
	}
	if err := ledger.Record(ctx, other, "def456"); err != nil {
		t.Fatalf("Record second: %v", err)
	}

	collected, err = ledger.Collected(ctx)
	if err != nil {
		t.Fatalf("Collected: %v", err)
	}
	if len(collected) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(collected))
	}
	if _, ok := collected[rec.URL]; !ok {
		t.Fatalf("missing %s in %v", rec.URL, collected)
	}
	if _, ok := collected[other.URL]; !ok {
		t.Fatalf("missing %s in %v", other.URL, collected)
	}
}

func TestSQLiteLedgerSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crawl_ledger.db")
	ctx := context.Background()

	ledger, err := OpenSQLiteLedger(path)
	if err != nil {
		t.Fatalf("OpenSQLiteLedger: %v", err)
	}
	rec := domain.ArticleRecord{
		URL:             "https://www.bbc.com/news/articles/abc123",
		Section:         "world",
		RawDocumentPath: "raw/world_abc123.html",
	}
	if err := ledger.Record(ctx, rec, "abc123"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ledger, err = OpenSQLiteLedger(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer ledger.Close()

	collected, err := ledger.Collected(ctx)
	if err != nil {
		t.Fatalf("Collected after reopen: %v", err)
	}
	if _, ok := collected[rec.URL]; !ok {
		t.Fatalf("entry lost across reopen: %v", collected)
	}
}
