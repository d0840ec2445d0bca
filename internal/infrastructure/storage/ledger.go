package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS collected_urls (
    url          TEXT PRIMARY KEY,
    section      TEXT NOT NULL,
    article_id   TEXT NOT NULL,
    raw_path     TEXT NOT NULL,
    collected_at TIMESTAMP NOT NULL
)`

// SQLiteLedger records every collected URL so a re-invoked run skips
// articles it already has, instead of re-fetching them.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.CrawlLedger = (*SQLiteLedger)(nil)

// OpenSQLiteLedger opens (creating if needed) the ledger database.
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

// Collected returns the set of URLs recorded by prior runs.
func (l *SQLiteLedger) Collected(ctx context.Context) (map[string]struct{}, error) {
	rows, err := sq.Select("url").
		From("collected_urls").
		RunWith(l.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query collected urls: %w", err)
	}
	defer rows.Close()

	result := map[string]struct{}{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		result[u] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

// Record registers one accepted article. Re-recording a URL is a no-op.
func (l *SQLiteLedger) Record(ctx context.Context, rec domain.ArticleRecord, articleID string) error {
	_, err := sq.Insert("collected_urls").
		Columns("url", "section", "article_id", "raw_path", "collected_at").
		Values(rec.URL, rec.Section, articleID, rec.RawDocumentPath, time.Now().UTC()).
		Suffix("ON CONFLICT(url) DO NOTHING").
		RunWith(l.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert collected url: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
