package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "NEWSPULSE_CONFIG"
	dataDirEnv    = "NEWSPULSE_DATA_DIR"
	resultsDirEnv = "NEWSPULSE_RESULTS_DIR"
	logLevelEnv   = "NEWSPULSE_LOG_LEVEL"
	userAgentEnv  = "NEWSPULSE_USER_AGENT"
)

// Config holds all settings consumed by the stage commands. Each stage
// receives the value explicitly; nothing reads globals at run time.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Collect CollectConfig `yaml:"collect"`
	Clean   CleanConfig   `yaml:"clean"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the scraped site and its section entry points.
type SiteConfig struct {
	BaseURL  string          `yaml:"baseUrl"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is one topical bucket with its landing page and
// optional search terms used to expand the candidate pool.
type SectionConfig struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	SearchTerms []string `yaml:"searchTerms"`
}

// CollectConfig bounds the crawl and sets collection-time quality limits.
type CollectConfig struct {
	ArticlesPerSection int    `yaml:"articlesPerSection"`
	MaxPagesPerSection int    `yaml:"maxPagesPerSection"`
	RequestDelay       string `yaml:"requestDelay"`
	RequestTimeout     string `yaml:"requestTimeout"`
	UserAgent          string `yaml:"userAgent"`
	MinBodyWords       int    `yaml:"minBodyWords"`
}

// Delay resolves the between-requests courtesy pause.
func (c CollectConfig) Delay() time.Duration {
	if d, err := time.ParseDuration(c.RequestDelay); err == nil && d >= 0 {
		return d
	}
	return time.Second
}

// Timeout resolves the per-request HTTP timeout.
func (c CollectConfig) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.RequestTimeout); err == nil && d > 0 {
		return d
	}
	return 15 * time.Second
}

// CleanConfig holds the quality thresholds, the event window, and the
// per-section balance cap applied by the cleaning stage.
type CleanConfig struct {
	WindowStart      string `yaml:"windowStart"` // YYYY-MM-DD
	WindowEnd        string `yaml:"windowEnd"`   // YYYY-MM-DD
	MinHeadlineChars int    `yaml:"minHeadlineChars"`
	MinBodyWords     int    `yaml:"minBodyWords"`
	MaxPerSection    int    `yaml:"maxPerSection"`
}

// Window parses the configured event window. The end bound is extended
// to the last instant of its day so the range is end-of-day inclusive.
func (c CleanConfig) Window() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", c.WindowStart, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", c.WindowEnd, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = end.Add(24*time.Hour - time.Second)
	return start, end, nil
}

// PathsConfig roots the on-disk layout for tables, raw documents, and results.
type PathsConfig struct {
	DataDir    string `yaml:"dataDir"`
	ResultsDir string `yaml:"resultsDir"`
}

// RawDir is the directory holding collection-stage artifacts.
func (p PathsConfig) RawDir() string { return filepath.Join(p.DataDir, "raw") }

// RawHTMLDir is the raw document store.
func (p PathsConfig) RawHTMLDir() string { return filepath.Join(p.RawDir(), "html") }

// RawMetadataCSV is the append-only metadata table written by collect.
func (p PathsConfig) RawMetadataCSV() string {
	return filepath.Join(p.RawDir(), "articles_metadata.csv")
}

// LedgerDB is the sqlite crawl ledger tracking collected URLs across runs.
func (p PathsConfig) LedgerDB() string { return filepath.Join(p.RawDir(), "crawl_ledger.db") }

// ProcessedDir holds the cleaned and scored tables.
func (p PathsConfig) ProcessedDir() string { return filepath.Join(p.DataDir, "processed") }

// CleanCSV is the output of the clean stage.
func (p PathsConfig) CleanCSV() string {
	return filepath.Join(p.ProcessedDir(), "articles_clean.csv")
}

// ScoredCSV is the output of the score stage.
func (p PathsConfig) ScoredCSV() string {
	return filepath.Join(p.ProcessedDir(), "articles_scored.csv")
}

// SectionSummaryCSV is the per-section aggregate table.
func (p PathsConfig) SectionSummaryCSV() string {
	return filepath.Join(p.ResultsDir, "summary_section.csv")
}

// TimeSummaryCSV is the per-(date, section) aggregate table.
func (p PathsConfig) TimeSummaryCSV() string {
	return filepath.Join(p.ResultsDir, "summary_time.csv")
}

// ReportHTML is the rendered chart report.
func (p PathsConfig) ReportHTML() string { return filepath.Join(p.ResultsDir, "report.html") }

// LoggingConfig controls console verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An empty path falls back to the NEWSPULSE_CONFIG variable,
// then to defaults.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Site.Sections) == 0 {
		cfg.Site.Sections = defaultConfig().Site.Sections
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Paths.DataDir = v
	}
	if v := os.Getenv(resultsDirEnv); v != "" {
		c.Paths.ResultsDir = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(userAgentEnv); v != "" {
		c.Collect.UserAgent = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}
	if len(override.Site.Sections) > 0 {
		base.Site.Sections = override.Site.Sections
	}

	if override.Collect.ArticlesPerSection > 0 {
		base.Collect.ArticlesPerSection = override.Collect.ArticlesPerSection
	}
	if override.Collect.MaxPagesPerSection > 0 {
		base.Collect.MaxPagesPerSection = override.Collect.MaxPagesPerSection
	}
	if override.Collect.RequestDelay != "" {
		base.Collect.RequestDelay = override.Collect.RequestDelay
	}
	if override.Collect.RequestTimeout != "" {
		base.Collect.RequestTimeout = override.Collect.RequestTimeout
	}
	if override.Collect.UserAgent != "" {
		base.Collect.UserAgent = override.Collect.UserAgent
	}
	if override.Collect.MinBodyWords > 0 {
		base.Collect.MinBodyWords = override.Collect.MinBodyWords
	}

	if override.Clean.WindowStart != "" {
		base.Clean.WindowStart = override.Clean.WindowStart
	}
	if override.Clean.WindowEnd != "" {
		base.Clean.WindowEnd = override.Clean.WindowEnd
	}
	if override.Clean.MinHeadlineChars > 0 {
		base.Clean.MinHeadlineChars = override.Clean.MinHeadlineChars
	}
	if override.Clean.MinBodyWords > 0 {
		base.Clean.MinBodyWords = override.Clean.MinBodyWords
	}
	if override.Clean.MaxPerSection > 0 {
		base.Clean.MaxPerSection = override.Clean.MaxPerSection
	}

	if override.Paths.DataDir != "" {
		base.Paths.DataDir = override.Paths.DataDir
	}
	if override.Paths.ResultsDir != "" {
		base.Paths.ResultsDir = override.Paths.ResultsDir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	const base = "https://www.bbc.com"
	return Config{
		Site: SiteConfig{
			BaseURL: base,
			Sections: []SectionConfig{
				{Name: "world", URL: base + "/news/world"},
				{Name: "business", URL: base + "/news/business"},
				{Name: "technology", URL: base + "/news/technology"},
			},
		},
		Collect: CollectConfig{
			ArticlesPerSection: 50,
			MaxPagesPerSection: 60,
			RequestDelay:       "1s",
			RequestTimeout:     "15s",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) " +
				"Chrome/120.0.0.0 Safari/537.36",
			MinBodyWords: 80,
		},
		Clean: CleanConfig{
			WindowStart:      "2024-12-01",
			WindowEnd:        "2025-12-15",
			MinHeadlineChars: 8,
			MinBodyWords:     60,
			MaxPerSection:    120,
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ResultsDir: "results",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
