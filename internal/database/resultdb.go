package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gumcrawl/gumcrawl/internal/model"
)

// ResultDB provides SQLite-based storage for crawl runs.
//
// Design decision: One database file holds all runs rather than one
// file per run. This keeps cross-run queries (price history for an ad,
// failure rates per search) trivial and simplifies backups.
type ResultDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures ResultDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ResultDB in the specified directory.
func Open(dbDir string, opts Options) (*ResultDB, error) {
	dbPath := filepath.Join(dbDir, "gumcrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ResultDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.initSchema(context.Background()); err != nil {
		_ = db.Close() //nolint:errcheck
		return nil, err
	}

	return rdb, nil
}

// initSchema creates the tables if they do not exist.
func (r *ResultDB) initSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed_url TEXT NOT NULL,
			pages INTEGER NOT NULL,
			item_count INTEGER NOT NULL,
			failure_count INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL,
			elapsed_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ad_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			price TEXT,
			negotiable INTEGER NOT NULL,
			location TEXT NOT NULL,
			description TEXT NOT NULL,
			seller_name TEXT NOT NULL,
			seller_id TEXT NOT NULL,
			seller_member_since TEXT NOT NULL,
			images TEXT,
			extras TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS failures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_run ON items(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_ad ON items(ad_id)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run ON failures(run_id)`,
	}

	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}

// SaveResult stores a complete crawl run and returns its run ID.
// The run, its items, and its failures are written in one transaction.
func (r *ResultDB) SaveResult(ctx context.Context, result *model.Result) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (seed_url, pages, item_count, failure_count, started_at, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.SeedURL, result.Pages, len(result.Items), len(result.Failures),
		result.StartedAt.UTC(), result.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, item := range result.Items {
		images, err := json.Marshal(item.Images)
		if err != nil {
			return 0, fmt.Errorf("failed to encode images for ad %s: %w", item.ID, err)
		}
		extras, err := json.Marshal(item.Extras)
		if err != nil {
			return 0, fmt.Errorf("failed to encode extras for ad %s: %w", item.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (run_id, ad_id, url, title, price, negotiable, location,
			                    description, seller_name, seller_id, seller_member_since, images, extras)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, item.ID, item.URL, item.Title, item.Price, item.Negotiable,
			item.Location, item.Description, item.Seller.Name, item.Seller.ID,
			item.Seller.MemberSince, string(images), string(extras),
		); err != nil {
			return 0, fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	for _, failure := range result.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, url, kind, message) VALUES (?, ?, ?, ?)`,
			runID, failure.URL, string(failure.Kind), failure.Message,
		); err != nil {
			return 0, fmt.Errorf("failed to insert failure for %s: %w", failure.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunSummary describes one stored crawl run.
type RunSummary struct {
	// ID is the run's database identifier.
	ID int64

	// SeedURL is the prepared search URL the run crawled.
	SeedURL string

	// Pages is the number of listing pages the run resolved.
	Pages int

	// Items is the number of ads successfully parsed.
	Items int

	// Failures is the number of captured per-unit failures.
	Failures int

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the run's wall-clock duration.
	Elapsed time.Duration
}

// GetRun retrieves the summary for a stored run.
func (r *ResultDB) GetRun(ctx context.Context, runID int64) (*RunSummary, error) {
	var s RunSummary
	var elapsedMs int64

	err := r.db.QueryRowContext(ctx,
		`SELECT id, seed_url, pages, item_count, failure_count, started_at, elapsed_ms
		 FROM runs WHERE id = ?`, runID,
	).Scan(&s.ID, &s.SeedURL, &s.Pages, &s.Items, &s.Failures, &s.StartedAt, &elapsedMs)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	s.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &s, nil
}

// GetItems retrieves all items stored for a run, in insertion order.
func (r *ResultDB) GetItems(ctx context.Context, runID int64) ([]*model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ad_id, url, title, price, negotiable, location, description,
		        seller_name, seller_id, seller_member_since, images, extras
		 FROM items WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for run %d: %w", runID, err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*model.Item
	for rows.Next() {
		var item model.Item
		var images, extras sql.NullString

		if err := rows.Scan(&item.ID, &item.URL, &item.Title, &item.Price,
			&item.Negotiable, &item.Location, &item.Description,
			&item.Seller.Name, &item.Seller.ID, &item.Seller.MemberSince,
			&images, &extras); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		if images.Valid && images.String != "null" {
			if err := json.Unmarshal([]byte(images.String), &item.Images); err != nil {
				return nil, fmt.Errorf("failed to decode images for ad %s: %w", item.ID, err)
			}
		}
		if extras.Valid && extras.String != "null" {
			if err := json.Unmarshal([]byte(extras.String), &item.Extras); err != nil {
				return nil, fmt.Errorf("failed to decode extras for ad %s: %w", item.ID, err)
			}
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

// GetFailures retrieves all failures stored for a run.
func (r *ResultDB) GetFailures(ctx context.Context, runID int64) ([]*model.Failure, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT url, kind, message FROM failures WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures for run %d: %w", runID, err)
	}
	defer rows.Close() //nolint:errcheck

	var failures []*model.Failure
	for rows.Next() {
		var f model.Failure
		var kind string
		if err := rows.Scan(&f.URL, &kind, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		f.Kind = model.FailureKind(kind)
		failures = append(failures, &f)
	}

	return failures, rows.Err()
}

// Path returns the database file path.
func (r *ResultDB) Path() string {
	return r.dbPath
}

// Close releases the database connection.
func (r *ResultDB) Close() error {
	return r.db.Close()
}
