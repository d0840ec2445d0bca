package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"newspulse/internal/config"
	"newspulse/internal/domain"
	"newspulse/internal/infrastructure/fetch"
	"newspulse/internal/infrastructure/report"
	"newspulse/internal/infrastructure/sentiment"
	"newspulse/internal/infrastructure/storage"
	"newspulse/internal/logging"
	"newspulse/internal/pipeline"
	"newspulse/internal/scrape"
)

// Application wires the configuration into the stage entry points. Each
// stage reads its declared inputs and writes its declared outputs; the
// only shared state between stages is the persisted tables.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Collect scrapes the configured sections and appends accepted articles
// to the raw metadata table, the raw document store, and the crawl ledger.
func (a *Application) Collect(ctx context.Context) error {
	paths := a.cfg.Paths
	if err := os.MkdirAll(paths.RawDir(), 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}

	sink, err := storage.NewCSVSink(paths.RawMetadataCSV())
	if err != nil {
		return err
	}
	defer sink.Close()

	raws, err := storage.NewHTMLStore(paths.RawHTMLDir())
	if err != nil {
		return err
	}

	ledger, err := storage.OpenSQLiteLedger(paths.LedgerDB())
	if err != nil {
		return err
	}
	defer ledger.Close()

	fetcher := fetch.NewHTTPFetcher(nil, a.cfg.Collect.Timeout(), a.cfg.Collect.UserAgent,
		a.logger.With("component", "fetcher"))

	collector, err := scrape.NewCollector(scrape.CollectorDeps{
		Fetcher:  fetcher,
		Sink:     sink,
		RawStore: raws,
		Ledger:   ledger,
		Logger:   a.logger.With("component", "collector"),
	}, a.cfg.Site, a.cfg.Collect)
	if err != nil {
		return err
	}

	total, err := collector.Run(ctx, a.cfg.Site.Sections)
	if err != nil {
		return err
	}

	a.logger.Info("collection done", "articles", total,
		"metadata", paths.RawMetadataCSV(), "raw_dir", paths.RawHTMLDir())
	return nil
}

// Clean filters, windows, deduplicates, and caps the raw table into the
// cleaned table.
func (a *Application) Clean(ctx context.Context) error {
	paths := a.cfg.Paths

	raw, err := storage.ReadArticleTable(paths.RawMetadataCSV())
	if err != nil {
		return err
	}
	a.logger.Info("raw table loaded", "rows", len(raw))

	cleaned, err := pipeline.Clean(raw, a.cfg.Clean, a.logger.With("component", "cleaner"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(paths.ProcessedDir(), 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	if err := storage.WriteArticleTable(paths.CleanCSV(), cleaned); err != nil {
		return err
	}

	a.logger.Info("clean table written", "rows", len(cleaned), "path", paths.CleanCSV())
	return nil
}

// Score enriches the cleaned table with sentiment scores and labels.
func (a *Application) Score(ctx context.Context) error {
	paths := a.cfg.Paths

	cleaned, err := storage.ReadArticleTable(paths.CleanCSV())
	if err != nil {
		return err
	}
	a.logger.Info("clean table loaded", "rows", len(cleaned))

	scored := pipeline.Score(cleaned, sentiment.NewVADERScorer())

	if err := storage.WriteScoredTable(paths.ScoredCSV(), scored); err != nil {
		return err
	}

	a.logger.Info("scored table written", "rows", len(scored), "path", paths.ScoredCSV())
	a.logLabelDistribution(scored)
	return nil
}

// Summarize aggregates the scored table by section and by (date, section).
func (a *Application) Summarize(ctx context.Context) error {
	paths := a.cfg.Paths

	scored, err := storage.ReadScoredTable(paths.ScoredCSV())
	if err != nil {
		return err
	}
	a.logger.Info("scored table loaded", "rows", len(scored))

	if err := os.MkdirAll(paths.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	sections := pipeline.SummarizeBySection(scored)
	if err := storage.WriteSectionSummaries(paths.SectionSummaryCSV(), sections); err != nil {
		return err
	}
	a.logger.Info("section summary written", "sections", len(sections), "path", paths.SectionSummaryCSV())

	daily := pipeline.SummarizeByDay(scored)
	if err := storage.WriteDailySummaries(paths.TimeSummaryCSV(), daily); err != nil {
		return err
	}
	a.logger.Info("time summary written", "rows", len(daily), "path", paths.TimeSummaryCSV())
	return nil
}

// Render turns the scored table and summaries into an HTML chart report.
func (a *Application) Render(ctx context.Context) error {
	paths := a.cfg.Paths

	scored, err := storage.ReadScoredTable(paths.ScoredCSV())
	if err != nil {
		return err
	}
	sections, err := storage.ReadSectionSummaries(paths.SectionSummaryCSV())
	if err != nil {
		return err
	}
	daily, err := storage.ReadDailySummaries(paths.TimeSummaryCSV())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(paths.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := report.WriteReport(paths.ReportHTML(), scored, sections, daily); err != nil {
		return err
	}

	a.logger.Info("report written", "path", paths.ReportHTML())
	return nil
}

func (a *Application) logLabelDistribution(scored []domain.ScoredRecord) {
	headline := map[domain.SentimentLabel]int{}
	body := map[domain.SentimentLabel]int{}
	for _, rec := range scored {
		headline[rec.HeadlineLabel]++
		body[rec.BodyLabel]++
	}
	a.logger.Info("headline label distribution",
		"positive", headline[domain.LabelPositive],
		"neutral", headline[domain.LabelNeutral],
		"negative", headline[domain.LabelNegative])
	a.logger.Info("body label distribution",
		"positive", body[domain.LabelPositive],
		"neutral", body[domain.LabelNeutral],
		"negative", body[domain.LabelNegative])
}
