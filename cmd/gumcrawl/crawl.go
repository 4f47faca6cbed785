package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gumcrawl/gumcrawl/internal/config"
	"github.com/gumcrawl/gumcrawl/internal/crawler"
	"github.com/gumcrawl/gumcrawl/internal/database"
	gumlog "github.com/gumcrawl/gumcrawl/internal/log"
	"github.com/gumcrawl/gumcrawl/internal/model"
	"github.com/gumcrawl/gumcrawl/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <search-url>",
		Short: "Crawl a Gumtree search and extract every ad",
		Long: `Crawl takes a Gumtree search results URL, resolves all listing pages
of the search, then fetches every ad concurrently and extracts a
structured record from each.

The URL is normalized before crawling: it is rewound to page one and
forced to the largest supported page size, so the whole search is
covered regardless of which page was pasted.

Examples:
  # Crawl a search and print a summary
  gumcrawl crawl "https://www.gumtree.com.au/s-bicycles/page-3/k0c18921"

  # Output a JSON report to a file
  gumcrawl crawl --json -o result.json "https://www.gumtree.com.au/s-bicycles/k0c18921"

  # Keep ads without a listed price instead of treating them as removed
  gumcrawl crawl --strict-availability=false "https://www.gumtree.com.au/s-bicycles/k0c18921"

Configuration file (.gumcrawl) example:
  concurrency: 4
  pageSize: 48
  timeout: 45s
  strictAvailability: false`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent fetches per crawl phase")
	cmd.Flags().Int("page-size", config.DefaultPageSize,
		"Results per listing page forced onto the search URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("user-agent", "",
		"Override the browser-like User-Agent header")
	cmd.Flags().Bool("strict-availability", true,
		"Treat ads without a price block as removed or sold")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .gumcrawl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("save", true,
		"Save the run to the results database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with URL trimming for progress lines
	logger := gumlog.NewProgressLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SeedURL = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.PageSize, err = cmd.Flags().GetInt("page-size")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.StrictAvailability, err = cmd.Flags().GetBool("strict-availability")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	// Overlay the config file onto flag values.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	seedURL, err := crawler.PrepareURL(cfg.SeedURL, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("invalid search URL %q: %w", cfg.SeedURL, err)
	}

	logger.Info("starting crawl",
		"seed", seedURL,
		"concurrency", cfg.Concurrency,
		"strictAvailability", cfg.StrictAvailability,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ResultDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	search := crawler.NewSearch(
		&http.Client{Timeout: cfg.Timeout},
		searchOptions(cfg, logger)...,
	)

	fmt.Printf("Crawling %s...\n", gumlog.Shorten(seedURL, gumlog.DefaultMaxURLLen))
	startTime := time.Now()

	result, err := search.Run(ctx, seedURL)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Crawl completed in %s: %d items, %d failures\n\n",
		elapsed.Round(time.Millisecond), len(result.Items), len(result.Failures))

	if db != nil {
		runID, err := db.SaveResult(ctx, result)
		if err != nil {
			logger.Error("failed to save result", "error", err)
		} else {
			logger.Info("result saved to database", "runID", runID, "path", db.Path())
		}
	}

	return outputReport(cfg, result)
}

// searchOptions maps the configuration onto crawler options.
func searchOptions(cfg *config.Config, logger *slog.Logger) []crawler.SearchOption {
	opts := []crawler.SearchOption{
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithLogger(logger),
	}
	if !cfg.StrictAvailability {
		opts = append(opts, crawler.WithLenientPrice())
	}
	if cfg.UserAgent != "" {
		opts = append(opts, crawler.WithFetcherOptions(crawler.WithUserAgent(cfg.UserAgent)))
	}
	return opts
}

// outputReport outputs the crawl result in the requested format.
func outputReport(cfg *config.Config, result *model.Result) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()),
		)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(result)
	return err
}
