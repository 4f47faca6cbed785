package crawler

import (
	"context"
	"io"
	"net/http"
)

// DefaultUserAgent mimics a desktop Chrome browser. Gumtree serves a
// reduced page (or blocks outright) for clients that do not identify
// as a common browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/41.0.2228.0 Safari/537.36"

// DefaultMaxBodySize caps how much of a response body is read.
// Listing and ad pages are well under 5MB; the limit guards against
// pathological responses.
const DefaultMaxBodySize = 5 * 1024 * 1024

// Fetcher issues single GET requests and returns raw page bytes.
// It is the only component in this package that touches the network.
//
// Design decision: We require an external *http.Client rather than
// constructing one because:
//  1. Timeout policy belongs to the caller (CLI flag)
//  2. Tests can inject httptest-backed clients
//  3. The client's internal pooling is shared across all workers
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher using the given HTTP client.
// A nil client falls back to http.DefaultClient.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs one GET request and returns the response body.
// Any network failure or non-2xx status yields a *TransportError
// carrying the URL; the caller decides whether that aborts the run
// (pagination phase) or is isolated to one unit (item phase).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	return body, nil
}
