package crawler

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gumcrawl/gumcrawl/internal/model"
)

var (
	// priceRe matches the decimal amount inside the price block,
	// e.g. "$250.00 Negotiable" -> "250.00".
	priceRe = regexp.MustCompile(`\$([0-9]+\.[0-9]{2})`)

	// largeImageRe extracts the "large" variant URL from the embedded
	// responsive-image literal on gallery holders.
	largeImageRe = regexp.MustCompile(`large: '(.*?)'`)
)

// ItemExtractor parses one ad-detail page into a model.Item.
//
// Each field has its own extraction rule; optional fields (price,
// images, extras) tolerate absent markup, while required fields (title,
// location, seller, description) fail the extraction with a ParseError
// naming the field.
type ItemExtractor struct {
	// TreatMissingPriceAsUnavailable selects the policy for an absent
	// price block. When true (the default used by Search), absence is
	// taken as proof the ad was removed or sold and Extract returns an
	// UnavailableAdError. When false, absence merely means "no listed
	// price" and extraction proceeds.
	//
	// Live ads render the price block even for non-numeric prices
	// ("swap", "contact for price"), which is why absence works as a
	// removal signal; the lenient mode exists for categories that omit
	// the block entirely.
	TreatMissingPriceAsUnavailable bool
}

// Extract parses content fetched from sourceURL into an Item.
// It returns *UnavailableAdError when the page indicates the ad was
// removed or sold, and *ParseError when required markup is missing or
// an extras key is duplicated. Extraction has no hidden state: parsing
// the same content twice yields structurally equal Items.
func (e *ItemExtractor) Extract(content []byte, sourceURL string) (*model.Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{URL: sourceURL, Field: "document", Message: err.Error()}
	}

	id, canonicalURL, err := AdIdentity(sourceURL)
	if err != nil {
		return nil, err
	}

	title, err := e.parseTitle(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	price, negotiable, err := e.parsePrice(doc, sourceURL, title)
	if err != nil {
		return nil, err
	}

	images, err := e.parseImages(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	location, err := e.parseLocation(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	seller, err := e.parseSeller(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	description, err := e.parseDescription(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	extras, err := e.parseExtras(doc, sourceURL)
	if err != nil {
		return nil, err
	}

	return &model.Item{
		ID:          id,
		URL:         canonicalURL,
		Title:       title,
		Price:       price,
		Negotiable:  negotiable,
		Images:      images,
		Location:    location,
		Seller:      seller,
		Description: description,
		Extras:      extras,
	}, nil
}

// parseTitle reads the required ad heading.
func (e *ItemExtractor) parseTitle(doc *goquery.Document, sourceURL string) (string, error) {
	sel := doc.Find(`h1#ad-title`).First()
	if sel.Length() == 0 {
		return "", &ParseError{URL: sourceURL, Field: "title", Message: "h1#ad-title not found"}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// parsePrice reads the optional price block. A present block whose text
// has no $N.NN amount yields an empty price without error; ads can
// legitimately list "swap" or "contact for price". The negotiable flag
// is computed independently of the amount.
func (e *ItemExtractor) parsePrice(doc *goquery.Document, sourceURL, title string) (price string, negotiable bool, err error) {
	sel := doc.Find(`div#ad-price`).First()
	if sel.Length() == 0 {
		if e.TreatMissingPriceAsUnavailable {
			return "", false, &UnavailableAdError{URL: sourceURL, Title: title}
		}
		return "", false, nil
	}

	text := strings.TrimSpace(sel.Text())
	if m := priceRe.FindStringSubmatch(text); m != nil {
		price = m[1]
	}

	return price, strings.Contains(text, "Negotiable"), nil
}

// parseImages reads the optional gallery. Holders without the
// responsive-image attribute are skipped; a holder that carries the
// attribute but not the expected large-variant literal is broken
// markup and fails the extraction.
func (e *ItemExtractor) parseImages(doc *goquery.Document, sourceURL string) ([]string, error) {
	gallery := doc.Find(`ul.gallery__main-viewer-list`).First()
	if gallery.Length() == 0 {
		return nil, nil
	}

	var images []string
	var parseErr error
	gallery.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		data, ok := s.Attr("data-responsive-image")
		if !ok {
			return true
		}

		m := largeImageRe.FindStringSubmatch(data)
		if m == nil {
			parseErr = &ParseError{
				URL:     sourceURL,
				Field:   "images",
				Message: "responsive-image attribute has no large variant",
			}
			return false
		}

		images = append(images, m[1])
		return true
	})

	return images, parseErr
}

// parseLocation reads the required map-region address. The map region
// is expected to always exist on a live ad.
func (e *ItemExtractor) parseLocation(doc *goquery.Document, sourceURL string) (string, error) {
	span := doc.Find(`div#ad-map span`).First()
	if span.Length() == 0 {
		return "", &ParseError{URL: sourceURL, Field: "location", Message: "div#ad-map span not found"}
	}

	address, ok := span.Attr("data-address")
	if !ok {
		return "", &ParseError{URL: sourceURL, Field: "location", Message: "map span has no data-address"}
	}

	return address, nil
}

// parseSeller locates the seller-profile fragment inside the sticky
// contact container and delegates to ExtractSeller.
func (e *ItemExtractor) parseSeller(doc *goquery.Document, sourceURL string) (model.Seller, error) {
	container := doc.Find(`div#sticky-contact-offer`).First()
	if container.Length() == 0 {
		return model.Seller{}, &ParseError{URL: sourceURL, Field: "seller", Message: "div#sticky-contact-offer not found"}
	}

	profile := container.Find(`div.seller-profile__seller-detail`).First()
	if profile.Length() == 0 {
		return model.Seller{}, &ParseError{URL: sourceURL, Field: "seller", Message: "seller-profile detail not found"}
	}

	return ExtractSeller(profile, sourceURL)
}

// parseDescription reads the required description element. An empty
// string is a valid description.
func (e *ItemExtractor) parseDescription(doc *goquery.Document, sourceURL string) (string, error) {
	sel := doc.Find(`div#ad-description-details`).First()
	if sel.Length() == 0 {
		return "", &ParseError{URL: sourceURL, Field: "description", Message: "div#ad-description-details not found"}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// parseExtras reads the optional free-form attributes section. Some
// categories (jobs, for one) never render it, so absence yields nil.
// A key seen twice on one page is a hard failure: the site never
// legitimately repeats an attribute name, so duplication means broken
// markup, and silently keeping either value would corrupt the record.
func (e *ItemExtractor) parseExtras(doc *goquery.Document, sourceURL string) (map[string]string, error) {
	container := doc.Find(`div#ad-attributes`).First()
	if container.Length() == 0 {
		return nil, nil
	}

	extras := make(map[string]string)
	var parseErr error
	container.Find("dl").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		// Decorative sections render no text at all; skip them.
		if strings.TrimSpace(section.Text()) == "" {
			return true
		}

		dt := section.Find("dt").First()
		dd := section.Find("dd").First()
		if dt.Length() == 0 || dd.Length() == 0 {
			parseErr = &ParseError{
				URL:     sourceURL,
				Field:   "attributes",
				Message: "attribute section missing dt/dd pair",
			}
			return false
		}

		key := normalizeExtrasKey(dt.Text())
		if _, exists := extras[key]; exists {
			parseErr = &ParseError{
				URL:     sourceURL,
				Field:   "attributes",
				Message: "duplicate key " + key,
			}
			return false
		}

		extras[key] = strings.TrimSpace(dd.Text())
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if len(extras) == 0 {
		return nil, nil
	}
	return extras, nil
}

// normalizeExtrasKey derives the map key from an attribute term:
// stripped, colons removed, spaces to underscores, lowercased.
func normalizeExtrasKey(term string) string {
	key := strings.TrimSpace(term)
	key = strings.ReplaceAll(key, ":", "")
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ToLower(key)
}
