// Package database persists crawl results to an embedded SQLite store.
//
// Persistence is a caller-side concern: the crawl core produces a
// model.Result and this package records it after the run completes.
// Storing runs lets repeated crawls of the same search be compared
// without re-fetching anything.
package database
