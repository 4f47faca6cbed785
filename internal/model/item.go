package model

// Item represents a single classified ad parsed from its detail page.
//
// An Item is immutable once the extractor returns it. Optional fields
// use their zero value for "absent": an ad can legitimately have no
// numeric price ("swap", "contact for price") and no images.
type Item struct {
	// ID is the ad identifier extracted from the trailing numeric
	// path segment of the source URL.
	ID string `json:"id"`

	// URL is the canonical ad URL rebuilt from the ad ID.
	// Tracking-parameter variants of the same ad normalize to one URL.
	URL string `json:"url"`

	// Title is the ad heading. Always non-empty: a page without a
	// title fails extraction.
	Title string `json:"title"`

	// Price is the listed decimal amount without the currency symbol
	// (e.g. "250.00"). Empty when the ad has no parseable price.
	Price string `json:"price,omitempty"`

	// Negotiable reports whether the price block contains the literal
	// word "Negotiable".
	Negotiable bool `json:"negotiable"`

	// Images holds the "large" variant URLs from the ad gallery, in
	// document order. May be empty.
	Images []string `json:"images,omitempty"`

	// Location is the address string from the ad's map region.
	Location string `json:"location"`

	// Seller identifies who posted the ad.
	Seller Seller `json:"seller"`

	// Description is the ad body text. May be the empty string.
	Description string `json:"description"`

	// Extras holds category-specific attributes (e.g. "condition",
	// "brand") keyed by normalized attribute name. Keys are unique;
	// a duplicate key on the source page fails extraction.
	Extras map[string]string `json:"extras,omitempty"`
}

// Seller holds the seller identity embedded in an ad page.
type Seller struct {
	// Name is the seller's display name.
	Name string `json:"name"`

	// ID is the path segment uniquely identifying the seller. When the
	// profile link does not match the expected pattern, this is the
	// raw href instead.
	ID string `json:"id"`

	// MemberSince is the raw membership date text. The source renders
	// it as locale-specific free text, so it is kept as-is rather than
	// parsed into a time.Time.
	MemberSince string `json:"member_since"`
}

// HasPrice reports whether the ad listed a parseable numeric price.
func (i *Item) HasPrice() bool {
	return i.Price != ""
}
