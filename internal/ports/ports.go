package ports

import (
	"context"

	"newspulse/internal/domain"
)

// Fetcher retrieves one page body over the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// MetadataSink is the append-only writer the collector persists accepted
// records through, so partial runs retain prior progress.
type MetadataSink interface {
	Append(rec domain.ArticleRecord) error
	Close() error
}

// RawStore persists raw article documents and returns the stored path.
type RawStore interface {
	Save(section, articleID string, body []byte) (string, error)
}

// CrawlLedger tracks which URLs were already collected, across runs.
type CrawlLedger interface {
	Collected(ctx context.Context) (map[string]struct{}, error)
	Record(ctx context.Context, rec domain.ArticleRecord, articleID string) error
}

// SentimentScorer produces a compound polarity score in [-1, 1] from a
// fixed lexicon. Empty or whitespace-only text scores exactly zero.
type SentimentScorer interface {
	Compound(text string) float64
}
