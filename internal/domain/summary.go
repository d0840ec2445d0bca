package domain

// SectionSummary aggregates scored records for one section.
type SectionSummary struct {
	Section      string
	Articles     int
	MeanHeadline float64
	MeanBody     float64
	MeanDelta    float64
	StdHeadline  float64
	StdBody      float64
}

// DailySummary aggregates scored records for one (date, section) pair.
// Only records with a parsed publish date contribute.
type DailySummary struct {
	Date         string // YYYY-MM-DD
	Section      string
	Articles     int
	MeanHeadline float64
	MeanBody     float64
	MeanDelta    float64
}
