package pipeline

import (
	"sort"

	"github.com/montanaflynn/stats"

	"newspulse/internal/domain"
)

// SummarizeBySection groups scored records by section and computes
// counts, means, and sample standard deviations of both scores plus the
// headline-minus-body delta. Sections with more articles sort first.
func SummarizeBySection(records []domain.ScoredRecord) []domain.SectionSummary {
	groups := map[string][]domain.ScoredRecord{}
	for _, rec := range records {
		groups[rec.Section] = append(groups[rec.Section], rec)
	}

	summaries := make([]domain.SectionSummary, 0, len(groups))
	for section, rows := range groups {
		headline := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.HeadlineScore })
		body := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.BodyScore })
		delta := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.ScoreDelta })

		summaries = append(summaries, domain.SectionSummary{
			Section:      section,
			Articles:     len(rows),
			MeanHeadline: mean(headline),
			MeanBody:     mean(body),
			MeanDelta:    mean(delta),
			StdHeadline:  sampleStd(headline),
			StdBody:      sampleStd(body),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Articles != summaries[j].Articles {
			return summaries[i].Articles > summaries[j].Articles
		}
		return summaries[i].Section < summaries[j].Section
	})
	return summaries
}

// SummarizeByDay groups scored records by (date, section), counting and
// averaging per day. Records without a parsed publish date do not
// contribute. The result is sorted by section, then date, ascending —
// the input shape the downstream rolling smoother expects.
func SummarizeByDay(records []domain.ScoredRecord) []domain.DailySummary {
	type key struct{ date, section string }

	groups := map[key][]domain.ScoredRecord{}
	for _, rec := range records {
		date := rec.PublishedDate()
		if date == "" {
			continue
		}
		k := key{date: date, section: rec.Section}
		groups[k] = append(groups[k], rec)
	}

	summaries := make([]domain.DailySummary, 0, len(groups))
	for k, rows := range groups {
		headline := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.HeadlineScore })
		body := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.BodyScore })
		delta := scoreColumn(rows, func(r domain.ScoredRecord) float64 { return r.ScoreDelta })

		summaries = append(summaries, domain.DailySummary{
			Date:         k.date,
			Section:      k.section,
			Articles:     len(rows),
			MeanHeadline: mean(headline),
			MeanBody:     mean(body),
			MeanDelta:    mean(delta),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Section != summaries[j].Section {
			return summaries[i].Section < summaries[j].Section
		}
		return summaries[i].Date < summaries[j].Date
	})
	return summaries
}

func scoreColumn(rows []domain.ScoredRecord, pick func(domain.ScoredRecord) float64) []float64 {
	column := make([]float64, 0, len(rows))
	for _, row := range rows {
		column = append(column, pick(row))
	}
	return column
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// sampleStd is zero for groups too small to carry a spread.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return sd
}
