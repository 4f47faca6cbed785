// Package log provides the slog handler used for crawl progress output.
//
// Crawl logs emit one line per fetched URL, and listing URLs routinely
// run past 150 characters. TrimHandler shortens URL-valued attributes
// with a middle ellipsis so progress lines stay readable in a terminal
// without losing the host or the trailing ad identifier.
package log
