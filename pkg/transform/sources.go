package transform

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

const sourcesLabel = "Sources:"

// normalizeSources rewrites a "Sources" paragraph to a bold italic label
// and italicizes every item of the ordered list that follows it. A heading
// list is not a source list and keeps its items as they are.
func normalizeSources(root *html.Node) int {
	changes := 0
	for _, p := range dom.FindAll(root, atom.P) {
		text := lowerText(p)
		if text != "sources" && text != "sources:" {
			continue
		}
		if !isSourcesLabel(p) {
			for _, c := range dom.Children(p) {
				p.RemoveChild(c)
			}
			p.AppendChild(dom.NewElement("strong", dom.NewElement("em", dom.NewText(sourcesLabel))))
			changes++
		}

		ol := nextSibling(p, atom.Ol)
		if ol == nil || isHeadingList(ol) {
			continue
		}
		for _, li := range dom.ElementChildren(ol) {
			if li.DataAtom == atom.Li && italicizeItem(li) {
				changes++
			}
		}
	}
	return changes
}

// isSourcesLabel reports whether p already is <p><strong><em>Sources:</em></strong></p>.
func isSourcesLabel(p *html.Node) bool {
	strong := p.FirstChild
	if !dom.IsElement(strong, atom.Strong) || strong.NextSibling != nil {
		return false
	}
	em := strong.FirstChild
	if !dom.IsElement(em, atom.Em) || em.NextSibling != nil {
		return false
	}
	t := em.FirstChild
	return dom.IsText(t) && t.NextSibling == nil && t.Data == sourcesLabel
}

// italicizeItem wraps the whole content of li in one em. Items that already
// consist of a lone em are left alone; em children of other items are merged
// into the new wrapper.
func italicizeItem(li *html.Node) bool {
	if li.FirstChild == nil {
		return false
	}
	if dom.IsElement(soleElement(li), atom.Em) {
		return false
	}
	for _, c := range dom.ElementChildren(li) {
		if c.DataAtom == atom.Em {
			dom.Unwrap(c)
		}
	}
	dom.WrapChildren(li, dom.NewElement("em"))
	return true
}

func nextSibling(n *html.Node, tag atom.Atom) *html.Node {
	for s := dom.NextElementSibling(n); s != nil; s = dom.NextElementSibling(s) {
		if s.DataAtom == tag {
			return s
		}
	}
	return nil
}
