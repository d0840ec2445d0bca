package domain

import (
	"strings"
	"time"
)

// ArticleRecord is a core entity describing one accepted article.
// Records are created by the collector, persisted once, and never
// mutated in place; later stages produce new filtered or enriched
// tables instead.
type ArticleRecord struct {
	URL             string
	Section         string
	PublishedAtRaw  string     // verbatim datetime attribute from the source page
	PublishedAt     *time.Time // parsed instant; nil when absent or unparsable
	Headline        string
	BodyPreview     string
	RawDocumentPath string
}

// PublishedDate renders the parsed timestamp as a YYYY-MM-DD string,
// empty when the record has no usable date.
func (r ArticleRecord) PublishedDate() string {
	if r.PublishedAt == nil {
		return ""
	}
	return r.PublishedAt.UTC().Format("2006-01-02")
}

// BodyWordCount counts whitespace-separated tokens in the body preview.
func (r ArticleRecord) BodyWordCount() int {
	return len(strings.Fields(r.BodyPreview))
}

// SentimentLabel is the three-way classification of a compound score.
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
	LabelNegative SentimentLabel = "negative"
)

// labelThreshold follows the standard VADER convention.
const labelThreshold = 0.05

// LabelFor maps a compound score in [-1, 1] onto a sentiment label.
func LabelFor(compound float64) SentimentLabel {
	switch {
	case compound >= labelThreshold:
		return LabelPositive
	case compound <= -labelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// ScoredRecord is an ArticleRecord enriched with sentiment scores for
// the headline and body preview, scored independently.
type ScoredRecord struct {
	ArticleRecord
	HeadlineScore float64
	BodyScore     float64
	HeadlineLabel SentimentLabel
	BodyLabel     SentimentLabel
	ScoreDelta    float64 // HeadlineScore - BodyScore
}
