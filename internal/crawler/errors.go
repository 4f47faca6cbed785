package crawler

import "fmt"

// Crawl errors form a closed set of three variants so callers can
// classify any unit failure with errors.As: transport failures,
// structural parse failures, and the positive "ad removed or sold"
// signal. Typed errors keep the URL and cause attached to the value so
// nothing travels as ad-hoc (url, error) tuples.

// TransportError reports an HTTP or network-level fetch failure.
type TransportError struct {
	// URL is the URL whose fetch failed.
	URL string

	// StatusCode is the HTTP status when a response was received.
	// Zero when the failure happened below the HTTP layer.
	StatusCode int

	// Err is the underlying cause, nil for bare status failures.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a required structural element that was missing or
// malformed, or a duplicate extras key.
type ParseError struct {
	// URL is the page being parsed.
	URL string

	// Field names the extraction step that failed (e.g. "title",
	// "location", "attributes").
	Field string

	// Message describes what was wrong.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s: %s", e.URL, e.Field, e.Message)
}

// UnavailableAdError reports that an ad page positively indicates the
// ad was removed or sold. It is an expected outcome, not a bug: live
// ads always render a price block, so its absence is the removal
// signal (see ItemExtractor.TreatMissingPriceAsUnavailable).
type UnavailableAdError struct {
	// URL is the ad page URL.
	URL string

	// Title is the ad title, already parsed before the availability
	// check ran. May be embedded in diagnostics to name the dead ad.
	Title string
}

// Error implements the error interface.
func (e *UnavailableAdError) Error() string {
	return fmt.Sprintf("ad no longer available: %q (%s)", e.Title, e.URL)
}
