package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gumcrawl/gumcrawl/internal/model"
)

// sellerHrefRe matches the canonical seller-profile link. The two
// captures are the seller name and the seller identifier.
var sellerHrefRe = regexp.MustCompile(`^/s-seller/(.*?)/(.*)$`)

// memberSincePrefix is the literal the membership span always starts
// with; the remainder is the raw, locale-specific date text.
const memberSincePrefix = "Gummie since "

// ExtractSeller parses the seller-profile fragment of an ad page.
//
// The first hyperlink carries the identity: when its href matches the
// /s-seller/<name>/<id> pattern, name and id come from the captures;
// alternate markup falls back to the link's visible text as name and
// the raw href as id. The membership date is taken verbatim from the
// member-since span, minus its fixed prefix.
func ExtractSeller(profile *goquery.Selection, sourceURL string) (model.Seller, error) {
	anchor := profile.Find("a[href]").First()
	if anchor.Length() == 0 {
		return model.Seller{}, &ParseError{URL: sourceURL, Field: "seller", Message: "profile has no link"}
	}

	href := anchor.AttrOr("href", "")
	var name, id string
	if m := sellerHrefRe.FindStringSubmatch(href); m != nil {
		name, id = m[1], m[2]
	} else {
		name = strings.TrimSpace(anchor.Text())
		id = href
	}

	span := profile.Find("span.seller-profile__member-since").First()
	if span.Length() == 0 {
		return model.Seller{}, &ParseError{URL: sourceURL, Field: "seller", Message: "member-since span not found"}
	}

	memberSince, ok := strings.CutPrefix(strings.TrimSpace(span.Text()), memberSincePrefix)
	if !ok {
		return model.Seller{}, &ParseError{
			URL:     sourceURL,
			Field:   "seller",
			Message: "member-since text lacks expected prefix",
		}
	}

	return model.Seller{
		Name:        name,
		ID:          id,
		MemberSince: strings.TrimSpace(memberSince),
	}, nil
}
