package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

var (
	faqMarkers      = []string{"frequently asked questions", "faq"}
	readMoreMarkers = []string{"read also:", "read more:", "see more:"}
)

// insertSpacing separates sections with spacing paragraphs. Only top-level
// siblings are considered; nothing is inserted where a spacing paragraph is
// already in place.
func insertSpacing(root *html.Node) int {
	changes := 0
	heading, list := findKeyTakeaways(root)

	if list != nil {
		if next := dom.NextSignificantSibling(list); !dom.IsSpacingParagraph(next) {
			dom.InsertAfter(list, dom.NewSpacingParagraph())
			changes++
		}
	}

	faqPending := false
	for _, n := range dom.ElementChildren(root) {
		if !needsSpacing(n, heading, &faqPending) || hasSpacingBefore(n) {
			continue
		}
		dom.InsertBefore(n, dom.NewSpacingParagraph())
		changes++
	}
	return changes
}

// needsSpacing decides whether a top-level element starts a section. The
// first h3 after a FAQ heading is exempt; faqPending carries that state
// across calls.
func needsSpacing(n, keyTakeaways *html.Node, faqPending *bool) bool {
	if dom.IsHeading(n) {
		if n == keyTakeaways {
			return false
		}
		if n.DataAtom == atom.H3 && *faqPending {
			*faqPending = false
			return false
		}
		if containsAny(lowerText(n), faqMarkers...) {
			*faqPending = true
		}
		return true
	}

	if n.DataAtom != atom.P || dom.IsSpacingParagraph(n) {
		return false
	}
	text := lowerText(n)
	switch {
	case containsAny(text, readMoreMarkers...):
		return true
	case strings.HasPrefix(text, "sources:"), text == "sources":
		return true
	case strings.HasPrefix(text, "disclaimer:"):
		return true
	case strings.Contains(text, "alt image text:"):
		return true
	}
	return false
}

// hasSpacingBefore checks the previous element sibling and, failing that,
// the previous sibling that is not whitespace.
func hasSpacingBefore(n *html.Node) bool {
	return dom.IsSpacingParagraph(dom.PrevElementSibling(n)) ||
		dom.IsSpacingParagraph(dom.PrevSignificantSibling(n))
}
