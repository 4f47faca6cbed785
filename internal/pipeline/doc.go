// Package pipeline provides the bounded-concurrency dispatcher used by
// both crawl phases (listing-page fetch and item fetch).
//
// The dispatcher runs a worker over a batch of units with a fixed
// concurrency width and returns exactly one outcome per unit. A failing
// unit never aborts or blocks its siblings; the error is captured in
// that unit's outcome instead.
package pipeline
