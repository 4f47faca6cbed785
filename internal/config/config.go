package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultConcurrency is the worker-pool width for both crawl
	// phases. Eight concurrent fetches keep a large search fast
	// without tripping the site's connection limits.
	DefaultConcurrency = 8

	// DefaultPageSize forces the largest result count the site serves
	// per listing page, minimizing the number of pages to crawl.
	DefaultPageSize = 96

	// DefaultTimeout bounds each individual HTTP request. The crawl
	// has no global deadline; a run simply proceeds until every unit
	// completes or times out on its own.
	DefaultTimeout = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "gumcrawl"
)

// Config holds all options for a crawl run. It is populated from CLI
// flags (optionally overlaid with a config file) and passed through the
// application by value rather than via global state.
type Config struct {
	// SeedURL is the search URL to crawl, before preparation.
	SeedURL string

	// Concurrency is the worker-pool width for both crawl phases.
	Concurrency int

	// PageSize is the pageSize query value forced onto the seed URL.
	PageSize int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent overrides the default browser-like User-Agent when
	// non-empty.
	UserAgent string

	// StrictAvailability treats a missing price block as proof the ad
	// was removed or sold. When false, absence merely means the ad
	// has no listed price.
	StrictAvailability bool

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout
	// when non-empty.
	ReportFile string

	// DBDir is the directory holding the SQLite results database.
	DBDir string

	// SaveToDB persists the run to the results database.
	SaveToDB bool

	// ConfigFilePath is an explicit config file path. Empty means
	// search for .gumcrawl in the current and home directories.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency:        DefaultConcurrency,
		PageSize:           DefaultPageSize,
		Timeout:            DefaultTimeout,
		StrictAvailability: true,
		SaveToDB:           true,
		DBDir:              XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for gumcrawl.
// On Linux this is ~/.local/share/gumcrawl.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration, returning the first problem found.
func (c *Config) Validate() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
