package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// relAttribute matches the rel values link injection produces.
var relAttribute = regexp.MustCompile(`^[a-z ]+$`)

// Policy returns a bluemonday policy equivalent to the allow-list, extended
// with the target and rel anchor attributes added by link injection. It is
// a second, independent filter for markup about to be published.
func Policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(relAttribute).OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}
