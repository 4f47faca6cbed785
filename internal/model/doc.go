// Package model defines the data structures produced by a crawl run.
//
// All types in this package are plain data: they are created and fully
// populated by the crawler package and never mutated afterwards. Keeping
// the model free of behavior and dependencies allows the database and
// report packages to consume it without importing crawl logic.
package model
