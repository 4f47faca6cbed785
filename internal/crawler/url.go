package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// canonicalAdBase is the fixed prefix canonical ad URLs are rebuilt
// from. Appending the ad ID yields a URL free of the search-context and
// tracking segments the listing pages link with.
const canonicalAdBase = "https://www.gumtree.com.au/s-ad/"

// DefaultPageSize is the page-size query value appended to prepared
// seed URLs. 96 is the largest result count the site serves per page,
// which minimizes the number of listing pages to crawl.
const DefaultPageSize = 96

var (
	pageSegmentRe = regexp.MustCompile(`(page-[0-9]+)/`)
	adIDRe        = regexp.MustCompile(`/([0-9]+)/?$`)
)

// PrepareURL normalizes a user-supplied search URL into the seed form
// the paginator requires: the path carries an explicit "page-1" segment
// and the query forces pageSize results per page.
//
// An existing page-N segment is rewound to page-1; otherwise page-1 is
// inserted as the second-to-last path segment, matching where the site
// places it.
func PrepareURL(rawURL string, pageSize int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid search URL %q: %w", rawURL, err)
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if m := pageSegmentRe.FindStringSubmatch(u.Path); m != nil {
		u.Path = strings.Replace(u.Path, m[1], "page-1", 1)
	} else {
		segments := strings.Split(u.Path, "/")
		if len(segments) < 2 {
			segments = []string{"", segments[len(segments)-1]}
		}
		segments = append(segments[:len(segments)-1],
			append([]string{"page-1"}, segments[len(segments)-1:]...)...)
		u.Path = strings.Join(segments, "/")
	}

	query := u.Query()
	query.Set("pageSize", fmt.Sprintf("%d", pageSize))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// AdIdentity derives the ad identifier from the trailing numeric path
// segment of sourceURL and rebuilds the canonical ad URL from it.
func AdIdentity(sourceURL string) (id, canonicalURL string, err error) {
	m := adIDRe.FindStringSubmatch(sourceURL)
	if m == nil {
		return "", "", &ParseError{
			URL:     sourceURL,
			Field:   "ad id",
			Message: "no trailing numeric path segment",
		}
	}

	id = m[1]
	return id, canonicalAdBase + id, nil
}
