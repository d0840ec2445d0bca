package report

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"newspulse/internal/domain"
)

const (
	histogramBins     = 30
	rollingWindow     = 7
	rollingMinPeriods = 3
)

// WriteReport renders all summary charts into a single HTML page.
func WriteReport(path string, scored []domain.ScoredRecord, sections []domain.SectionSummary, daily []domain.DailySummary) error {
	page := components.NewPage()
	page.AddCharts(
		articlesPerSectionChart(scored),
		headlineVsBodyChart(sections),
		deltaHistogram(scored),
		labelProportionsChart(scored, "Headline Sentiment Labels by Section", func(r domain.ScoredRecord) domain.SentimentLabel { return r.HeadlineLabel }),
		labelProportionsChart(scored, "Body Sentiment Labels by Section", func(r domain.ScoredRecord) domain.SentimentLabel { return r.BodyLabel }),
		rollingTimeSeriesChart(daily),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func articlesPerSectionChart(scored []domain.ScoredRecord) *charts.Bar {
	counts := map[string]int{}
	for _, rec := range scored {
		counts[rec.Section]++
	}
	sections := sortedKeys(counts)

	data := make([]opts.BarData, 0, len(sections))
	for _, section := range sections {
		data = append(data, opts.BarData{Value: counts[section]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Articles per Section"}))
	bar.SetXAxis(sections).AddSeries("articles", data)
	return bar
}

func headlineVsBodyChart(sections []domain.SectionSummary) *charts.Bar {
	names := make([]string, 0, len(sections))
	headline := make([]opts.BarData, 0, len(sections))
	body := make([]opts.BarData, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Section)
		headline = append(headline, opts.BarData{Value: round4(s.MeanHeadline)})
		body = append(body, opts.BarData{Value: round4(s.MeanBody)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Mean Compound Score: Headline vs Body",
	}))
	bar.SetXAxis(names).
		AddSeries("headline", headline).
		AddSeries("body", body)
	return bar
}

func deltaHistogram(scored []domain.ScoredRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "Distribution of Headline - Body Score Delta",
	}))

	if len(scored) == 0 {
		return bar
	}

	lo, hi := scored[0].ScoreDelta, scored[0].ScoreDelta
	for _, rec := range scored {
		lo = math.Min(lo, rec.ScoreDelta)
		hi = math.Max(hi, rec.ScoreDelta)
	}
	width := (hi - lo) / histogramBins
	if width == 0 {
		width = 1
	}

	counts := make([]int, histogramBins)
	for _, rec := range scored {
		bin := int((rec.ScoreDelta - lo) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}

	labels := make([]string, histogramBins)
	data := make([]opts.BarData, histogramBins)
	for i := range counts {
		center := lo + width*(float64(i)+0.5)
		labels[i] = fmt.Sprintf("%.2f", center)
		data[i] = opts.BarData{Value: counts[i]}
	}

	bar.SetXAxis(labels).AddSeries("frequency", data)
	return bar
}

func labelProportionsChart(scored []domain.ScoredRecord, title string, pick func(domain.ScoredRecord) domain.SentimentLabel) *charts.Bar {
	perSection := map[string]map[domain.SentimentLabel]int{}
	for _, rec := range scored {
		if perSection[rec.Section] == nil {
			perSection[rec.Section] = map[domain.SentimentLabel]int{}
		}
		perSection[rec.Section][pick(rec)]++
	}

	sections := make([]string, 0, len(perSection))
	for section := range perSection {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(sections)

	labels := []domain.SentimentLabel{domain.LabelPositive, domain.LabelNeutral, domain.LabelNegative}
	for _, label := range labels {
		data := make([]opts.BarData, 0, len(sections))
		for _, section := range sections {
			total := 0
			for _, n := range perSection[section] {
				total += n
			}
			proportion := 0.0
			if total > 0 {
				proportion = float64(perSection[section][label]) / float64(total)
			}
			data = append(data, opts.BarData{Value: round4(proportion)})
		}
		bar.AddSeries(string(label), data, charts.WithBarChartOpts(opts.BarChart{Stack: "labels"}))
	}
	return bar
}

// rollingTimeSeriesChart plots 7-day rolling means of headline and body
// scores per section over the shared date axis. Points before the
// minimum window fill render as gaps.
func rollingTimeSeriesChart(daily []domain.DailySummary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "7-day Rolling Sentiment: Headline vs Body",
	}))

	perSection := map[string][]domain.DailySummary{}
	dateSet := map[string]struct{}{}
	for _, d := range daily {
		perSection[d.Section] = append(perSection[d.Section], d)
		dateSet[d.Date] = struct{}{}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	line.SetXAxis(dates)

	sections := make([]string, 0, len(perSection))
	for s := range perSection {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	for _, section := range sections {
		rows := perSection[section]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

		headline := rollingMean(column(rows, func(d domain.DailySummary) float64 { return d.MeanHeadline }))
		body := rollingMean(column(rows, func(d domain.DailySummary) float64 { return d.MeanBody }))

		line.AddSeries(section+" headline", seriesOverDates(dates, rows, headline))
		line.AddSeries(section+" body", seriesOverDates(dates, rows, body))
	}
	return line
}

// rollingMean computes a trailing mean over rollingWindow points; fewer
// than rollingMinPeriods points yield nil (a gap in the chart).
func rollingMean(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		start := i - rollingWindow + 1
		if start < 0 {
			start = 0
		}
		window := values[start : i+1]
		if len(window) < rollingMinPeriods {
			continue
		}
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		m := round4(sum / float64(len(window)))
		out[i] = &m
	}
	return out
}

func seriesOverDates(dates []string, rows []domain.DailySummary, values []*float64) []opts.LineData {
	byDate := map[string]*float64{}
	for i, row := range rows {
		byDate[row.Date] = values[i]
	}

	data := make([]opts.LineData, 0, len(dates))
	for _, date := range dates {
		if v, ok := byDate[date]; ok && v != nil {
			data = append(data, opts.LineData{Value: *v})
		} else {
			data = append(data, opts.LineData{Value: nil})
		}
	}
	return data
}

func column(rows []domain.DailySummary, pick func(domain.DailySummary) float64) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick(row))
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
