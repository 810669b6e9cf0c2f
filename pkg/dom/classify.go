package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Static classification tables. Stages consult these instead of comparing
// tag names ad hoc.
var (
	blockTags = atomSet(
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Ul, atom.Ol, atom.Li, atom.Dl, atom.Dt, atom.Dd,
		atom.Blockquote, atom.Pre, atom.Hr,
		atom.Table, atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Th, atom.Td, atom.Caption,
		atom.Div, atom.Section, atom.Article, atom.Aside, atom.Header, atom.Footer,
		atom.Nav, atom.Main, atom.Figure, atom.Figcaption, atom.Address,
	)

	inlineTags = atomSet(
		atom.A, atom.Em, atom.I, atom.Strong, atom.B, atom.Span, atom.Code,
		atom.Sup, atom.Sub, atom.U, atom.S, atom.Small, atom.Mark, atom.Abbr,
		atom.Cite, atom.Q, atom.Kbd, atom.Samp, atom.Var, atom.Font, atom.Img, atom.Br,
	)

	voidTags = atomSet(
		atom.Br, atom.Hr, atom.Img, atom.Wbr, atom.Input, atom.Meta, atom.Link,
		atom.Area, atom.Base, atom.Col, atom.Embed, atom.Param, atom.Source, atom.Track,
	)

	headingLevels = map[atom.Atom]int{
		atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
	}
)

func atomSet(atoms ...atom.Atom) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(atoms))
	for _, a := range atoms {
		m[a] = true
	}
	return m
}

// IsBlock reports whether n is a block element. Block elements always start
// a new output line.
func IsBlock(n *html.Node) bool {
	return IsElement(n) && blockTags[n.DataAtom]
}

// IsInline reports whether n is a known inline element.
func IsInline(n *html.Node) bool {
	return IsElement(n) && inlineTags[n.DataAtom]
}

// IsVoid reports whether n is a void element that never has children.
func IsVoid(n *html.Node) bool {
	return IsElement(n) && voidTags[n.DataAtom]
}

// IsHeading reports whether n is one of h1-h6.
func IsHeading(n *html.Node) bool {
	return IsElement(n) && headingLevels[n.DataAtom] > 0
}

// HeadingLevel returns 1-6 for headings and 0 otherwise.
func HeadingLevel(n *html.Node) int {
	if !IsElement(n) {
		return 0
	}
	return headingLevels[n.DataAtom]
}

// IsSpacingParagraph reports whether n is exactly <p>&nbsp;</p>: a p with no
// attributes whose only child is a text node holding one non-breaking space.
func IsSpacingParagraph(n *html.Node) bool {
	if !IsElement(n, atom.P) || len(n.Attr) > 0 {
		return false
	}
	c := n.FirstChild
	return c != nil && c == n.LastChild && c.Type == html.TextNode && c.Data == NBSP
}

// ContainsBlock reports whether any descendant of n is a block element.
func ContainsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsBlock(c) || ContainsBlock(c) {
			return true
		}
	}
	return false
}
