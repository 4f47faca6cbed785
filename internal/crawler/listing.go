package crawler

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// ExtractListingURLs parses one listing page and returns the ad-detail
// URLs it links to, in document order. Relative hrefs are resolved
// against pageURL. Duplicates are kept: an ad pinned on two pages
// yields two fetch attempts downstream, which is harmless because the
// item phase is idempotent per URL.
func ExtractListingURLs(content []byte, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Field: "document", Message: err.Error()}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, &ParseError{URL: pageURL, Field: "base url", Message: err.Error()}
	}

	var itemURLs []string
	doc.Find(`a.ad-listing__title-link[itemprop="url"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			// A malformed href on one listing should not sink the
			// whole page; the remaining links still count.
			return
		}

		itemURLs = append(itemURLs, base.ResolveReference(ref).String())
	})

	return itemURLs, nil
}
