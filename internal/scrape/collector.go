package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newspulse/internal/config"
	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

// maxEmptyPages stops a section after this many consecutive pages that
// yield zero new candidate links (crawl exhaustion).
const maxEmptyPages = 3

// CollectorDeps wires all driven adapters into the collection workflow.
type CollectorDeps struct {
	Fetcher    ports.Fetcher
	Sink       ports.MetadataSink
	RawStore   ports.RawStore
	Ledger     ports.CrawlLedger
	Classifier *Classifier
	Logger     *slog.Logger
}

// Collector walks section entry points, classifies candidate links,
// extracts article fields, and appends accepted records one by one.
// It is single-threaded and pauses between network requests.
type Collector struct {
	fetcher    ports.Fetcher
	sink       ports.MetadataSink
	raws       ports.RawStore
	ledger     ports.CrawlLedger
	classifier *Classifier
	logger     *slog.Logger

	base  *url.URL
	gate  QualityGate
	cfg   config.CollectConfig
	delay time.Duration
}

// NewCollector constructs the collection orchestrator.
func NewCollector(deps CollectorDeps, site config.SiteConfig, cfg config.CollectConfig) (*Collector, error) {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %s: %w", site.BaseURL, err)
	}

	classifier := deps.Classifier
	if classifier == nil {
		classifier = NewClassifier(site.BaseURL)
	}

	return &Collector{
		fetcher:    deps.Fetcher,
		sink:       deps.Sink,
		raws:       deps.RawStore,
		ledger:     deps.Ledger,
		classifier: classifier,
		logger:     deps.Logger,
		base:       base,
		gate:       QualityGate{MinHeadlineChars: 1, MinBodyWords: cfg.MinBodyWords},
		cfg:        cfg,
		delay:      cfg.Delay(),
	}, nil
}

// Run collects every configured section in order and returns the total
// number of accepted articles. Individual fetch failures are logged and
// skipped; only sink and raw-store write failures abort the run.
func (c *Collector) Run(ctx context.Context, sections []config.SectionConfig) (int, error) {
	seen := map[string]struct{}{}
	if c.ledger != nil {
		prior, err := c.ledger.Collected(ctx)
		if err != nil {
			return 0, fmt.Errorf("load crawl ledger: %w", err)
		}
		seen = prior
		c.info("crawl ledger loaded", "known_urls", len(prior))
	}

	total := 0
	for _, section := range sections {
		count, err := c.collectSection(ctx, section, seen)
		if err != nil {
			return total, fmt.Errorf("section %s: %w", section.Name, err)
		}
		c.info("section done", "section", section.Name, "collected", count)
		total += count
	}

	return total, nil
}

func (c *Collector) collectSection(ctx context.Context, section config.SectionConfig, seen map[string]struct{}) (int, error) {
	c.info("collect section", "section", section.Name, "target", c.cfg.ArticlesPerSection)

	collected := 0
	emptyPages := 0

	for page := 0; page < c.cfg.MaxPagesPerSection; page++ {
		candidates := c.harvestPage(ctx, section, page)

		var fresh []string
		for _, u := range candidates {
			if _, known := seen[u]; !known {
				fresh = append(fresh, u)
			}
		}
		c.info("page candidates", "section", section.Name, "page", page,
			"found", len(candidates), "new", len(fresh))

		if len(fresh) == 0 {
			emptyPages++
			if emptyPages >= maxEmptyPages {
				c.info("no new links, stopping section", "section", section.Name, "page", page)
				break
			}
			continue
		}
		emptyPages = 0

		for _, articleURL := range fresh {
			if collected >= c.cfg.ArticlesPerSection {
				break
			}
			seen[articleURL] = struct{}{}

			accepted, err := c.collectArticle(ctx, section.Name, articleURL)
			if err != nil {
				return collected, err
			}
			if accepted {
				collected++
				c.info("collected", "section", section.Name,
					"count", collected, "target", c.cfg.ArticlesPerSection)
			}
		}

		if collected >= c.cfg.ArticlesPerSection {
			break
		}
	}

	return collected, nil
}

// harvestPage fetches the section page (and any configured search
// expansions) for one page index and returns classified candidate URLs,
// sorted and deduplicated. Fetch failures degrade to zero candidates.
func (c *Collector) harvestPage(ctx context.Context, section config.SectionConfig, page int) []string {
	pages := []string{pagedURL(section.URL, page)}
	for _, term := range section.SearchTerms {
		pages = append(pages, c.searchURL(term, page))
	}

	unique := map[string]struct{}{}
	for _, pageURL := range pages {
		body, err := c.fetcher.Fetch(ctx, pageURL)
		c.pause()
		if err != nil {
			c.warn("fetch page failed", "url", pageURL, "error", err)
			continue
		}
		for _, link := range c.harvestLinks(body) {
			unique[link] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(unique))
	for u := range unique {
		candidates = append(candidates, u)
	}
	sort.Strings(candidates)
	return candidates
}

// harvestLinks extracts anchor targets from landing-page HTML, resolves
// them against the site base, and keeps those the classifier accepts.
func (c *Collector) harvestLinks(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.warn("parse landing page failed", "error", err)
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		absolute := c.base.ResolveReference(ref).String()
		if c.classifier.Classify(absolute) {
			links = append(links, absolute)
		}
	})
	return links
}

// collectArticle fetches, extracts, gates, and persists one candidate.
// The boolean reports acceptance; an error means a write failure that
// must abort the run.
func (c *Collector) collectArticle(ctx context.Context, sectionName, articleURL string) (bool, error) {
	body, err := c.fetcher.Fetch(ctx, articleURL)
	c.pause()
	if err != nil {
		c.warn("fetch article failed", "url", articleURL, "error", err)
		return false, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.warn("parse article failed", "url", articleURL, "error", err)
		return false, nil
	}

	ext := Extract(doc)
	if ok, reason := c.gate.Check(ext.Headline, ext.BodyPreview); !ok {
		c.debug("skip article", "url", articleURL, "reason", reason)
		return false, nil
	}

	articleID := c.classifier.ArticleID(articleURL)
	rawPath, err := c.raws.Save(sectionName, articleID, body)
	if err != nil {
		return false, fmt.Errorf("save raw document %s: %w", articleURL, err)
	}

	rec := domain.ArticleRecord{
		URL:             articleURL,
		Section:         sectionName,
		PublishedAtRaw:  ext.PublishedAtRaw,
		PublishedAt:     ext.PublishedAt,
		Headline:        ext.Headline,
		BodyPreview:     ext.BodyPreview,
		RawDocumentPath: rawPath,
	}

	if err := c.sink.Append(rec); err != nil {
		return false, fmt.Errorf("append record %s: %w", articleURL, err)
	}

	if c.ledger != nil {
		if err := c.ledger.Record(ctx, rec, articleID); err != nil {
			c.warn("record in crawl ledger failed", "url", articleURL, "error", err)
		}
	}

	return true, nil
}

// pagedURL appends the page query parameter; page zero is the bare entry URL.
func pagedURL(entry string, page int) string {
	if page == 0 {
		return entry
	}
	parsed, err := url.Parse(entry)
	if err != nil {
		return entry
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// searchURL builds a keyword search page used to expand the candidate pool.
func (c *Collector) searchURL(term string, page int) string {
	search := *c.base
	search.Path = "/search"
	query := url.Values{}
	query.Set("q", term)
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	search.RawQuery = query.Encode()
	return search.String()
}

func (c *Collector) pause() {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}

func (c *Collector) info(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Collector) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Collector) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
