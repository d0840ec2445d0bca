package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/araddon/dateparse"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

var rawHeader = []string{
	"url", "section", "published_at", "headline", "body_preview", "raw_document_path",
}

var cleanHeader = []string{
	"url", "section", "published_at", "published_date", "headline", "body_preview", "raw_document_path",
}

var scoredHeader = append(append([]string{}, cleanHeader...),
	"headline_compound", "body_compound", "headline_label", "body_label", "score_delta",
)

// CSVSink is an append-only writer for the raw metadata table. The
// header is written once, when the file is created; subsequent runs
// keep appending so partial progress survives.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

var _ ports.MetadataSink = (*CSVSink)(nil)

// NewCSVSink opens (or creates) the metadata table for appending.
func NewCSVSink(path string) (*CSVSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open metadata table: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat metadata table: %w", err)
	}

	sink := &CSVSink{file: file, writer: csv.NewWriter(file)}
	if info.Size() == 0 {
		if err := sink.writer.Write(rawHeader); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
		sink.writer.Flush()
		if err := sink.writer.Error(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("flush header: %w", err)
		}
	}

	return sink, nil
}

// Append writes one record and flushes immediately, so an interrupted
// run loses at most the row in flight.
func (s *CSVSink) Append(rec domain.ArticleRecord) error {
	row := []string{
		rec.URL,
		rec.Section,
		rec.PublishedAtRaw,
		rec.Headline,
		rec.BodyPreview,
		rec.RawDocumentPath,
	}
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush row: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// ReadArticleTable loads a raw or cleaned metadata table. Columns are
// resolved by header name, so both shapes read identically. Timestamps
// are parsed leniently; unparsable values leave the field absent.
func ReadArticleTable(path string) ([]domain.ArticleRecord, error) {
	rows, index, err := readTable(path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ArticleRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.ArticleRecord{
			URL:             cell(row, index, "url"),
			Section:         cell(row, index, "section"),
			PublishedAtRaw:  cell(row, index, "published_at"),
			Headline:        cell(row, index, "headline"),
			BodyPreview:     cell(row, index, "body_preview"),
			RawDocumentPath: cell(row, index, "raw_document_path"),
		}
		if rec.PublishedAtRaw != "" {
			if parsed, err := dateparse.ParseAny(rec.PublishedAtRaw); err == nil {
				utc := parsed.UTC()
				rec.PublishedAt = &utc
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteArticleTable writes the cleaned table, adding the derived
// published_date column consumers group by.
func WriteArticleTable(path string, records []domain.ArticleRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.URL,
			rec.Section,
			rec.PublishedAtRaw,
			rec.PublishedDate(),
			rec.Headline,
			rec.BodyPreview,
			rec.RawDocumentPath,
		})
	}
	return writeTable(path, cleanHeader, rows)
}

// ReadScoredTable loads the sentiment-enriched table.
func ReadScoredTable(path string) ([]domain.ScoredRecord, error) {
	rows, index, err := readTable(path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ScoredRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.ScoredRecord{
			ArticleRecord: domain.ArticleRecord{
				URL:             cell(row, index, "url"),
				Section:         cell(row, index, "section"),
				PublishedAtRaw:  cell(row, index, "published_at"),
				Headline:        cell(row, index, "headline"),
				BodyPreview:     cell(row, index, "body_preview"),
				RawDocumentPath: cell(row, index, "raw_document_path"),
			},
			HeadlineScore: floatCell(row, index, "headline_compound"),
			BodyScore:     floatCell(row, index, "body_compound"),
			HeadlineLabel: domain.SentimentLabel(cell(row, index, "headline_label")),
			BodyLabel:     domain.SentimentLabel(cell(row, index, "body_label")),
			ScoreDelta:    floatCell(row, index, "score_delta"),
		}
		if rec.PublishedAtRaw != "" {
			if parsed, err := dateparse.ParseAny(rec.PublishedAtRaw); err == nil {
				utc := parsed.UTC()
				rec.PublishedAt = &utc
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteScoredTable writes the sentiment-enriched table.
func WriteScoredTable(path string, records []domain.ScoredRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.URL,
			rec.Section,
			rec.PublishedAtRaw,
			rec.PublishedDate(),
			rec.Headline,
			rec.BodyPreview,
			rec.RawDocumentPath,
			formatFloat(rec.HeadlineScore),
			formatFloat(rec.BodyScore),
			string(rec.HeadlineLabel),
			string(rec.BodyLabel),
			formatFloat(rec.ScoreDelta),
		})
	}
	return writeTable(path, scoredHeader, rows)
}

// WriteSectionSummaries writes the per-section aggregate table.
func WriteSectionSummaries(path string, summaries []domain.SectionSummary) error {
	header := []string{"section", "n_articles", "mean_headline", "mean_body", "mean_delta", "std_headline", "std_body"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Section,
			strconv.Itoa(s.Articles),
			formatFloat(s.MeanHeadline),
			formatFloat(s.MeanBody),
			formatFloat(s.MeanDelta),
			formatFloat(s.StdHeadline),
			formatFloat(s.StdBody),
		})
	}
	return writeTable(path, header, rows)
}

// ReadSectionSummaries loads the per-section aggregate table.
func ReadSectionSummaries(path string) ([]domain.SectionSummary, error) {
	rows, index, err := readTable(path)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SectionSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.SectionSummary{
			Section:      cell(row, index, "section"),
			Articles:     intCell(row, index, "n_articles"),
			MeanHeadline: floatCell(row, index, "mean_headline"),
			MeanBody:     floatCell(row, index, "mean_body"),
			MeanDelta:    floatCell(row, index, "mean_delta"),
			StdHeadline:  floatCell(row, index, "std_headline"),
			StdBody:      floatCell(row, index, "std_body"),
		})
	}
	return summaries, nil
}

// WriteDailySummaries writes the per-(date, section) aggregate table.
func WriteDailySummaries(path string, summaries []domain.DailySummary) error {
	header := []string{"date", "section", "n_articles", "mean_headline", "mean_body", "mean_delta"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Date,
			s.Section,
			strconv.Itoa(s.Articles),
			formatFloat(s.MeanHeadline),
			formatFloat(s.MeanBody),
			formatFloat(s.MeanDelta),
		})
	}
	return writeTable(path, header, rows)
}

// ReadDailySummaries loads the per-(date, section) aggregate table.
func ReadDailySummaries(path string) ([]domain.DailySummary, error) {
	rows, index, err := readTable(path)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.DailySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.DailySummary{
			Date:         cell(row, index, "date"),
			Section:      cell(row, index, "section"),
			Articles:     intCell(row, index, "n_articles"),
			MeanHeadline: floatCell(row, index, "mean_headline"),
			MeanBody:     floatCell(row, index, "mean_body"),
			MeanDelta:    floatCell(row, index, "mean_delta"),
		})
	}
	return summaries, nil
}

func readTable(path string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, map[string]int{}, nil
	}

	index := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		index[name] = i
	}
	return all[1:], index, nil
}

func writeTable(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush table %s: %w", path, err)
	}
	return nil
}

func cell(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func floatCell(row []string, index map[string]int, name string) float64 {
	v, err := strconv.ParseFloat(cell(row, index, name), 64)
	if err != nil {
		return 0
	}
	return v
}

func intCell(row []string, index map[string]int, name string) int {
	v, err := strconv.Atoi(cell(row, index, name))
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
