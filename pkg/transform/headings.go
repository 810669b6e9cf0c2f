package transform

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

var headingTags = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// wrapHeadings moves the content of every heading into a single strong,
// unless the heading already consists of one strong.
func wrapHeadings(root *html.Node) int {
	changes := 0
	for _, h := range dom.FindAll(root, headingTags...) {
		if h.FirstChild == nil {
			continue
		}
		if dom.IsElement(soleElement(h), atom.Strong) {
			continue
		}
		dom.WrapChildren(h, dom.NewElement("strong"))
		changes++
	}
	return changes
}

// headingOf returns the heading carried by a heading-list item:
// li > strong > hN with nothing else but whitespace at each level.
func headingOf(li *html.Node) *html.Node {
	strong := soleElement(li)
	if !dom.IsElement(strong, atom.Strong) {
		return nil
	}
	h := soleElement(strong)
	if !dom.IsHeading(h) {
		return nil
	}
	return h
}

// isHeadingList reports whether every li of ol wraps exactly one heading in
// one strong.
func isHeadingList(ol *html.Node) bool {
	if !dom.IsElement(ol, atom.Ol) || !hasOnlyWhitespaceText(ol) {
		return false
	}
	items := dom.ElementChildren(ol)
	if len(items) == 0 {
		return false
	}
	for _, li := range items {
		if !dom.IsElement(li, atom.Li) || headingOf(li) == nil {
			return false
		}
	}
	return true
}

// neighbour returns the sibling of n in the given direction, skipping
// whitespace and spacing paragraphs.
func neighbour(n *html.Node, forward bool) *html.Node {
	step := dom.PrevSignificantSibling
	if forward {
		step = dom.NextSignificantSibling
	}
	s := step(n)
	for s != nil && dom.IsSpacingParagraph(s) {
		s = step(s)
	}
	return s
}

// sectionKey finds the h2 that scopes numbering for n: the nearest preceding
// top-level h2. Reaching an h1 first, or the start of the document, yields
// nil, which shares one counter.
func sectionKey(n *html.Node) *html.Node {
	top := dom.TopLevel(n)
	if top == nil {
		return nil
	}
	for s := top.PrevSibling; s != nil; s = s.PrevSibling {
		switch {
		case dom.IsElement(s, atom.H1):
			return nil
		case dom.IsElement(s, atom.H2):
			return s
		}
	}
	return nil
}

// convertHeadingLists replaces each heading list with its headings,
// numbered per section. A heading list directly next to another heading
// list is left alone.
func convertHeadingLists(root *html.Node) int {
	var lists []*html.Node
	isList := make(map[*html.Node]bool)
	for _, ol := range dom.FindAll(root, atom.Ol) {
		if isHeadingList(ol) {
			lists = append(lists, ol)
			isList[ol] = true
		}
	}

	counters := make(map[*html.Node]int)
	changes := 0
	for _, ol := range lists {
		if isList[neighbour(ol, true)] || isList[neighbour(ol, false)] {
			continue
		}

		key := sectionKey(ol)
		for _, li := range dom.ElementChildren(ol) {
			counters[key]++
			h := dom.Clone(headingOf(li))
			prefix := strconv.Itoa(counters[key]) + ". "
			if strong := directStrong(h); strong != nil {
				dom.PrependText(strong, prefix)
			} else {
				dom.PrependText(h, prefix)
			}
			dom.InsertBefore(ol, h)
		}
		dom.Remove(ol)
		changes++
	}
	return changes
}

func directStrong(n *html.Node) *html.Node {
	for _, c := range dom.ElementChildren(n) {
		if c.DataAtom == atom.Strong {
			return c
		}
	}
	return nil
}
