// Package main provides the entry point for the gumcrawl CLI.
//
// Gumcrawl crawls a Gumtree search results URL, follows every listing
// page and every ad on it, and extracts structured item records.
//
// Usage:
//
//	gumcrawl crawl <search-url>
//	gumcrawl crawl --json <search-url>
//
// See --help for all available options.
package main

// main is the entry point for gumcrawl.
func main() {
	Execute()
}
