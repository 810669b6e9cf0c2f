package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Select returns a snapshot of the descendants of root matching a CSS
// selector, in document order. An invalid selector matches nothing.
func Select(root *html.Node, selector string) []*html.Node {
	sel := goquery.NewDocumentFromNode(root).Find(selector)
	out := make([]*html.Node, len(sel.Nodes))
	copy(out, sel.Nodes)
	return out
}

// SelectFirst returns the first descendant matching selector, or nil.
func SelectFirst(root *html.Node, selector string) *html.Node {
	sel := goquery.NewDocumentFromNode(root).Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}
