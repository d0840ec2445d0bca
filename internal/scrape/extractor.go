package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

const (
	// minParagraphWords filters out captions and navigation fragments.
	minParagraphWords = 4
	// maxPreviewParagraphs bounds the body preview length.
	maxPreviewParagraphs = 5
)

// Extraction is the result of pulling structured fields out of one
// article page. Absent elements yield empty or nil fields; extraction
// never fails outright, the caller's quality gate is the real filter.
type Extraction struct {
	Headline       string
	PublishedAtRaw string
	PublishedAt    *time.Time
	BodyPreview    string
}

// Extract pulls headline, publish timestamp, and a bounded body preview
// from heterogeneous article markup.
func Extract(doc *goquery.Document) Extraction {
	var ext Extraction

	ext.Headline = collapseSpace(doc.Find("h1").First().Text())

	if attr, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		ext.PublishedAtRaw = strings.TrimSpace(attr)
		if parsed, err := dateparse.ParseAny(ext.PublishedAtRaw); err == nil {
			utc := parsed.UTC()
			ext.PublishedAt = &utc
		}
	}

	ext.BodyPreview = extractBodyPreview(doc)

	return ext
}

// extractBodyPreview scans paragraph nodes in document order, preferring
// the primary-content container when one exists. Paragraphs below the
// word threshold are dropped and consecutive exact duplicates collapsed
// (some pages repeat the lede in the markup).
func extractBodyPreview(doc *goquery.Document) string {
	scope := doc.Selection
	if main := doc.Find("main").First(); main.Length() > 0 {
		scope = main
	}

	var kept []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := collapseSpace(p.Text())
		if len(strings.Fields(text)) < minParagraphWords {
			return
		}
		if len(kept) > 0 && kept[len(kept)-1] == text {
			return
		}
		kept = append(kept, text)
	})

	if len(kept) > maxPreviewParagraphs {
		kept = kept[:maxPreviewParagraphs]
	}

	return strings.Join(kept, " ")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
