package model

import "time"

// FailureKind classifies why a URL failed to produce an Item.
type FailureKind string

const (
	// FailureTransport indicates an HTTP or network-level failure.
	FailureTransport FailureKind = "transport"

	// FailureParse indicates a required structural element was missing
	// or malformed, or an extras key was duplicated.
	FailureParse FailureKind = "parse"

	// FailureUnavailable indicates the page positively signalled that
	// the ad was removed or sold. This is expected, not a bug.
	FailureUnavailable FailureKind = "unavailable"
)

// Failure pairs a requested URL with the error that prevented producing
// its Item. A Failure occupies the output slot its URL would have
// filled, so nothing is dropped silently.
type Failure struct {
	// URL is the requested page or ad URL.
	URL string `json:"url"`

	// Kind is the failure classification.
	Kind FailureKind `json:"kind"`

	// Message is the human-readable diagnostic.
	Message string `json:"message"`

	// Err is the underlying error. Excluded from JSON; the Kind and
	// Message fields carry the serializable diagnostics.
	Err error `json:"-"`
}

// Result holds everything a single crawl run produced.
type Result struct {
	// SeedURL is the prepared listing URL the run started from.
	SeedURL string `json:"seed_url"`

	// Pages is the number of listing pages resolved for the search.
	Pages int `json:"pages"`

	// Items contains every ad successfully parsed.
	Items []*Item `json:"items"`

	// Failures contains one entry per page or ad URL that could not be
	// turned into its target entity.
	Failures []*Failure `json:"failures,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// FailuresOfKind returns the failures matching the given kind.
func (r *Result) FailuresOfKind(kind FailureKind) []*Failure {
	var out []*Failure
	for _, f := range r.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
