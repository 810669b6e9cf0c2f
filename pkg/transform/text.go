package transform

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// lowerText is the trimmed, lower-cased text content used for keyword
// matching.
func lowerText(n *html.Node) string {
	return strings.ToLower(strings.TrimSpace(dom.TextContent(n)))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// hasOnlyWhitespaceText reports whether every direct text child of n is
// whitespace.
func hasOnlyWhitespaceText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && !dom.IsWhitespaceText(c) {
			return false
		}
	}
	return true
}

// soleElement returns n's only element child when n has no other element
// children and no non-whitespace text.
func soleElement(n *html.Node) *html.Node {
	kids := dom.ElementChildren(n)
	if len(kids) != 1 || !hasOnlyWhitespaceText(n) {
		return nil
	}
	return kids[0]
}
