package pipeline

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"newspulse/internal/config"
	"newspulse/internal/domain"
	"newspulse/internal/scrape"
)

// Clean applies the quality gate, event-window filter, URL
// deduplication, and per-section cap to a raw metadata table, in that
// exact order. The input is not mutated; a new table is returned.
// Clean is idempotent: running it on its own output is a no-op.
func Clean(records []domain.ArticleRecord, cfg config.CleanConfig, logger *slog.Logger) ([]domain.ArticleRecord, error) {
	windowStart, windowEnd, err := cfg.Window()
	if err != nil {
		return nil, fmt.Errorf("parse event window: %w", err)
	}

	rows := normalizeTimestamps(records)

	rows = qualityFilter(rows, cfg)
	logStep(logger, "after quality filters", rows)

	rows = windowFilter(rows, windowStart, windowEnd)
	logStep(logger, "after event window", rows)

	rows = dedupeByURL(rows)
	logStep(logger, "after deduplication", rows)

	rows = capPerSection(rows, cfg.MaxPerSection)
	logStep(logger, "after per-section cap", rows)

	return rows, nil
}

// normalizeTimestamps parses raw timestamps that earlier stages left
// unparsed. Unparsable values become absent; the row is retained.
func normalizeTimestamps(records []domain.ArticleRecord) []domain.ArticleRecord {
	rows := make([]domain.ArticleRecord, len(records))
	copy(rows, records)
	for i := range rows {
		if rows[i].PublishedAt != nil || rows[i].PublishedAtRaw == "" {
			continue
		}
		if parsed, err := dateparse.ParseAny(rows[i].PublishedAtRaw); err == nil {
			utc := parsed.UTC()
			rows[i].PublishedAt = &utc
		}
	}
	return rows
}

func qualityFilter(records []domain.ArticleRecord, cfg config.CleanConfig) []domain.ArticleRecord {
	gate := scrape.QualityGate{
		MinHeadlineChars: cfg.MinHeadlineChars,
		MinBodyWords:     cfg.MinBodyWords,
	}

	var kept []domain.ArticleRecord
	for _, rec := range records {
		if rec.URL == "" || rec.Section == "" {
			continue
		}
		if ok, _ := gate.Check(rec.Headline, rec.BodyPreview); !ok {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// windowFilter keeps rows whose timestamp falls inside the inclusive
// window. Rows without a parsed timestamp are retained: they remain
// usable for cross-section comparisons that do not need dates.
func windowFilter(records []domain.ArticleRecord, start, end time.Time) []domain.ArticleRecord {
	var kept []domain.ArticleRecord
	for _, rec := range records {
		if rec.PublishedAt == nil {
			kept = append(kept, rec)
			continue
		}
		ts := rec.PublishedAt.UTC()
		if !ts.Before(start) && !ts.After(end) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// dedupeByURL keeps the first occurrence of each URL in input order.
func dedupeByURL(records []domain.ArticleRecord) []domain.ArticleRecord {
	seen := map[string]struct{}{}
	var kept []domain.ArticleRecord
	for _, rec := range records {
		if _, dup := seen[rec.URL]; dup {
			continue
		}
		seen[rec.URL] = struct{}{}
		kept = append(kept, rec)
	}
	return kept
}

// capPerSection sorts by (section ascending, timestamp descending) and
// keeps the most recent maxPerSection rows of each section. Rows with
// an absent timestamp always sort after dated rows within their
// section, so they are only retained when the dated rows leave room.
func capPerSection(records []domain.ArticleRecord, maxPerSection int) []domain.ArticleRecord {
	rows := make([]domain.ArticleRecord, len(records))
	copy(rows, records)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Section != rows[j].Section {
			return rows[i].Section < rows[j].Section
		}
		ti, tj := rows[i].PublishedAt, rows[j].PublishedAt
		switch {
		case ti == nil && tj == nil:
			return false
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	counts := map[string]int{}
	var kept []domain.ArticleRecord
	for _, rec := range rows {
		if counts[rec.Section] >= maxPerSection {
			continue
		}
		counts[rec.Section]++
		kept = append(kept, rec)
	}
	return kept
}

func logStep(logger *slog.Logger, step string, rows []domain.ArticleRecord) {
	if logger != nil {
		logger.Info(step, "rows", len(rows))
	}
}
