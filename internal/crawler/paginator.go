package crawler

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lastPageRe extracts the page-index numeral from the "last page"
// control's target URL.
var lastPageRe = regexp.MustCompile(`/page-([0-9]+)/`)

// Paginator discovers how many listing pages a search has and derives
// their URLs from the seed.
type Paginator struct {
	fetcher *Fetcher
}

// NewPaginator creates a Paginator using the given fetcher.
func NewPaginator(fetcher *Fetcher) *Paginator {
	return &Paginator{fetcher: fetcher}
}

// Resolve fetches seedURL, reads the page bound from the paginator's
// "last page" control, and returns the ordered URLs of every listing
// page. The seed must already carry a page-1 path segment (see
// PrepareURL); page i is derived by substituting page-1 with page-i.
//
// When the paginator region or the last-page control is absent, the
// search has a single page and the result is exactly [seedURL].
//
// Errors here are fatal for the whole run: without the page bound no
// work list can be built at all. This is the one step where a transport
// or parse failure is not isolated to a unit.
func (p *Paginator) Resolve(ctx context.Context, seedURL string) ([]string, error) {
	body, err := p.fetcher.Fetch(ctx, seedURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{URL: seedURL, Field: "document", Message: err.Error()}
	}

	last := doc.Find(`div.paginator a.paginator__button-last[href]`).First()
	if last.Length() == 0 {
		return []string{seedURL}, nil
	}

	href := last.AttrOr("href", "")
	m := lastPageRe.FindStringSubmatch(href)
	if m == nil {
		return nil, &ParseError{
			URL:     seedURL,
			Field:   "paginator",
			Message: fmt.Sprintf("last-page control href %q has no page-N segment", href),
		}
	}

	maxPage, err := strconv.Atoi(m[1])
	if err != nil || maxPage < 1 {
		return nil, &ParseError{
			URL:     seedURL,
			Field:   "paginator",
			Message: fmt.Sprintf("invalid page bound %q", m[1]),
		}
	}

	pageURLs := make([]string, 0, maxPage)
	for i := 1; i <= maxPage; i++ {
		pageURLs = append(pageURLs, strings.ReplaceAll(seedURL, "page-1", fmt.Sprintf("page-%d", i)))
	}

	return pageURLs, nil
}
