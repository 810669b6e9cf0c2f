package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

const keyTakeawaysPhrase = "key takeaways"

// findKeyTakeaways returns the first h2 mentioning key takeaways and the
// first ul sibling after it. Either may be nil.
func findKeyTakeaways(root *html.Node) (heading, list *html.Node) {
	for _, h := range dom.FindAll(root, atom.H2) {
		if strings.Contains(lowerText(h), keyTakeawaysPhrase) {
			heading = h
			break
		}
	}
	if heading == nil {
		return nil, nil
	}
	return heading, nextSibling(heading, atom.Ul)
}

// normalizeKeyTakeaways removes italics from the key takeaways heading and
// its list, and makes the heading end with a colon.
func normalizeKeyTakeaways(root *html.Node) int {
	heading, list := findKeyTakeaways(root)
	if heading == nil {
		return 0
	}

	changes := unwrapAll(heading, atom.Em)
	if list != nil {
		for _, li := range dom.ElementChildren(list) {
			if li.DataAtom == atom.Li {
				changes += unwrapAll(li, atom.Em)
			}
		}
	}
	if appendColon(heading) {
		changes++
	}
	return changes
}

func unwrapAll(n *html.Node, tag atom.Atom) int {
	found := dom.FindAll(n, tag)
	for _, e := range found {
		dom.Unwrap(e)
	}
	return len(found)
}

// appendColon makes the text of heading end with ":". The colon goes into
// the last text node, which is inside the strong when the heading has been
// wrapped; without a text node it goes into the last strong, or the heading.
func appendColon(heading *html.Node) bool {
	if strings.HasSuffix(dom.TrimRightSpace(dom.TextContent(heading)), ":") {
		return false
	}

	t := dom.LastText(heading)
	for t != nil && dom.TrimRightSpace(t.Data) == "" {
		dom.Remove(t)
		t = dom.LastText(heading)
	}
	if t != nil {
		t.Data = dom.TrimRightSpace(t.Data) + ":"
		return true
	}

	target := heading
	if strongs := dom.FindAll(heading, atom.Strong); len(strongs) > 0 {
		target = strongs[len(strongs)-1]
	}
	target.AppendChild(dom.NewText(":"))
	return true
}

// removeStrayHeading drops an h1 that directly follows the key takeaways
// list.
func removeStrayHeading(root *html.Node) int {
	heading, list := findKeyTakeaways(root)
	if heading == nil || list == nil {
		return 0
	}
	next := dom.NextElementSibling(list)
	if !dom.IsElement(next, atom.H1) {
		return 0
	}
	dom.Remove(next)
	return 1
}
