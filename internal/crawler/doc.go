// Package crawler implements the Gumtree search crawl: pagination
// discovery, listing-link extraction, and structured ad extraction.
//
// The crawl runs in two batch phases. First the paginator resolves the
// seed URL into the full set of listing-page URLs and each page is
// fetched and scanned for ad links. Then every ad URL is fetched and
// parsed into a model.Item. Both phases go through the pipeline
// dispatcher, so one bad page or ad never aborts its siblings; the
// failure is captured in that unit's output slot instead.
//
// Extraction is pure computation over already-fetched bytes. Only the
// Fetcher touches the network.
package crawler
