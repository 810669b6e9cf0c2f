package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// normalizeListColons tidies "Label:" lead-ins in list items: no whitespace
// inside the strong after the colon, exactly one space after the strong.
func normalizeListColons(root *html.Node) int {
	changes := 0
	for _, strong := range dom.FindAll(root, atom.Strong) {
		if dom.ClosestAncestor(strong, atom.Li) == nil {
			continue
		}
		if !strings.HasSuffix(dom.TrimRightSpace(dom.TextContent(strong)), ":") {
			continue
		}
		changed := trimTrailing(strong)
		if spaceAfter(strong) {
			changed = true
		}
		if changed {
			changes++
		}
	}
	return changes
}

// trimTrailing removes whitespace at the end of n's text.
func trimTrailing(n *html.Node) bool {
	changed := false
	t := dom.LastText(n)
	for t != nil && dom.TrimRightSpace(t.Data) == "" {
		dom.Remove(t)
		changed = true
		t = dom.LastText(n)
	}
	if t != nil {
		if trimmed := dom.TrimRightSpace(t.Data); trimmed != t.Data {
			t.Data = trimmed
			changed = true
		}
	}
	return changed
}

// spaceAfter makes the content following n start with exactly one space.
func spaceAfter(n *html.Node) bool {
	next := n.NextSibling
	switch {
	case next == nil:
		n.Parent.AppendChild(dom.NewText(" "))
		return true
	case next.Type == html.TextNode:
		want := " " + dom.TrimLeftSpace(next.Data)
		if next.Data == want {
			return false
		}
		next.Data = want
		return true
	default:
		dom.InsertAfter(n, dom.NewText(" "))
		return true
	}
}
