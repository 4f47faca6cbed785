package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gumcrawl/gumcrawl/internal/config"
	"github.com/gumcrawl/gumcrawl/internal/model"
)

// testLogger returns a logger that discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl <search-url>" {
			t.Errorf("expected use 'crawl <search-url>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
		if flag.DefValue != "8" {
			t.Errorf("expected default '8', got %q", flag.DefValue)
		}
	})

	t.Run("has page-size flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("page-size")
		if flag == nil {
			t.Fatal("expected page-size flag")
		}
		if flag.DefValue != "96" {
			t.Errorf("expected default '96', got %q", flag.DefValue)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has strict-availability flag defaulting to true", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("strict-availability")
		if flag == nil {
			t.Fatal("expected strict-availability flag")
		}
		if flag.DefValue != "true" {
			t.Errorf("expected default 'true', got %q", flag.DefValue)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has save flag defaulting to true", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("save")
		if flag == nil {
			t.Fatal("expected save flag")
		}
		if flag.DefValue != "true" {
			t.Errorf("expected default 'true', got %q", flag.DefValue)
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewCrawlCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		crawlCmd, _, err := root.Find([]string{"crawl"})
		if err != nil {
			t.Fatalf("failed to find crawl command: %v", err)
		}

		result := getVerboseFlag(crawlCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	const seedURL = "https://www.gumtree.com.au/s-bicycles/k0c18921"

	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.SeedURL != seedURL {
			t.Errorf("expected seed URL %q, got %q", seedURL, cfg.SeedURL)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", config.DefaultConcurrency, cfg.Concurrency)
		}
		if !cfg.StrictAvailability {
			t.Error("expected StrictAvailability to default to true")
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
	})

	t.Run("builds config with custom concurrency", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("concurrency", "3")
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
		}
	})

	t.Run("builds config with lenient availability", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("strict-availability", "false")
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.StrictAvailability {
			t.Error("expected StrictAvailability to be false")
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})

	t.Run("applies values from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "gumcrawl.yaml")

		content := []byte(`
concurrency: 2
timeout: 45s
strictAvailability: false
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{seedURL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Concurrency != 2 {
			t.Errorf("expected concurrency 2 from config file, got %d", cfg.Concurrency)
		}
		if cfg.Timeout != 45*time.Second {
			t.Errorf("expected timeout 45s from config file, got %s", cfg.Timeout)
		}
		if cfg.StrictAvailability {
			t.Error("expected StrictAvailability false from config file")
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", configPath)
		_, err := buildConfig(cmd, []string{seedURL})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := buildConfig(cmd, []string{seedURL})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

// TestOutputReport tests report output selection and file handling.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	sampleResult := func() *model.Result {
		return &model.Result{
			SeedURL: "https://www.gumtree.com.au/s-bicycles/page-1/k0c18921?pageSize=96",
			Pages:   1,
			Items: []*model.Item{
				{
					ID:    "1001",
					URL:   "https://www.gumtree.com.au/s-ad/1001",
					Title: "Road bike",
					Price: "300.00",
				},
			},
			StartedAt: time.Now(),
			Elapsed:   time.Second,
		}
	}

	t.Run("writes JSON report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "report.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if _, ok := decoded["result"]; !ok {
			t.Error("expected 'result' key in JSON report")
		}
	})

	t.Run("writes markdown report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "# Gumcrawl Report") {
			t.Error("expected markdown header in report file")
		}
	})

	t.Run("writes simple report to file by default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		cfg := config.NewConfig()
		cfg.ReportFile = path

		if err := outputReport(cfg, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "GUMCRAWL RESULT") {
			t.Error("expected summary header in report file")
		}
	})
}

// TestSearchOptions tests the flag-to-option mapping.
func TestSearchOptions(t *testing.T) {
	t.Parallel()

	t.Run("strict config yields base options", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		opts := searchOptions(cfg, testLogger())
		if len(opts) != 2 {
			t.Errorf("expected 2 options, got %d", len(opts))
		}
	})

	t.Run("lenient price and user agent add options", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.StrictAvailability = false
		cfg.UserAgent = "test-agent/1.0"
		opts := searchOptions(cfg, testLogger())
		if len(opts) != 4 {
			t.Errorf("expected 4 options, got %d", len(opts))
		}
	})
}
