package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Package-level sentinel errors allow callers to use errors.Is while
// keeping the messages human-readable.
var (
	// ErrNoSeedURL is returned when no search URL was provided.
	ErrNoSeedURL = errors.New("no search URL specified")

	// ErrInvalidConcurrency is returned when the worker-pool width is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPageSize is returned when the page size is not positive.
	ErrInvalidPageSize = errors.New("invalid page size: must be positive")

	// ErrInvalidTimeout is returned when the request timeout is not
	// positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
