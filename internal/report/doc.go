// Package report renders crawl results for humans and tools.
//
// Three formats are supported: a plain-text summary for terminals, JSON
// for programmatic consumption, and Markdown for sharing. All writers
// implement the same Writer interface, and MultiWriter fans one result
// out to several destinations.
package report
