// Package structure removes structural noise left behind by pasted markup:
// redundant line breaks, paragraphs nested in list items, inconsistent
// emphasis nesting and whitespace hugging link text.
package structure

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// Stats counts what a cleaner run changed.
type Stats struct {
	BreaksRemoved       int `json:"breaks_removed"`
	ParagraphsUnwrapped int `json:"paragraphs_unwrapped"`
	EmphasisReordered   int `json:"emphasis_reordered"`
	EmphasisMerged      int `json:"emphasis_merged"`
	AnchorsTrimmed      int `json:"anchors_trimmed"`
}

// Total returns the number of changes made.
func (s Stats) Total() int {
	return s.BreaksRemoved + s.ParagraphsUnwrapped + s.EmphasisReordered + s.EmphasisMerged + s.AnchorsTrimmed
}

// Cleaner applies the structural passes to a sanitized tree.
type Cleaner struct {
	stats Stats
}

// New creates a Cleaner.
func New() *Cleaner {
	return &Cleaner{}
}

// Clean is a convenience for New().Clean(root).
func Clean(root *html.Node) *html.Node {
	return New().Clean(root)
}

// Stats returns the counters accumulated by Clean calls.
func (c *Cleaner) Stats() Stats {
	return c.stats
}

// Clean mutates root in place and returns it. Break and paragraph removal
// runs over the whole tree before emphasis is touched, because unwrapping
// can make inline siblings adjacent.
func (c *Cleaner) Clean(root *html.Node) *html.Node {
	c.breaks(root, false)

	dom.WalkElements(root, func(n *html.Node) bool {
		if n.DataAtom == atom.Li {
			c.emphasis(n)
			return false
		}
		return true
	})

	for _, a := range dom.FindAll(root, atom.A) {
		c.trimAnchor(a)
	}
	return root
}

// breaks removes redundant br elements below n and unwraps paragraphs
// inside list items. inList is set once an li ancestor has been entered.
func (c *Cleaner) breaks(n *html.Node, inList bool) {
	blockParent := n.Type == html.DocumentNode || dom.IsBlock(n)

	for _, child := range dom.Children(n) {
		if child.Parent != n || child.Type != html.ElementNode {
			continue
		}

		switch {
		case child.DataAtom == atom.Br:
			if blockParent || inList || followsBlock(child) {
				c.removeBreak(child)
			}
		case child.DataAtom == atom.P && inList:
			c.breaks(child, true)
			c.unwrapParagraph(child)
		default:
			c.breaks(child, inList || child.DataAtom == atom.Li)
		}
	}
}

// followsBlock reports whether br trails a block element, possibly through
// whitespace and other trailing breaks already removed.
func followsBlock(br *html.Node) bool {
	return dom.IsBlock(dom.PrevSignificantSibling(br))
}

// removeBreak drops br, leaving a space when the break was the only thing
// separating two words.
func (c *Cleaner) removeBreak(br *html.Node) {
	c.stats.BreaksRemoved++
	if gluesWords(br.PrevSibling, br.NextSibling) {
		dom.ReplaceWith(br, dom.NewText(" "))
		return
	}
	dom.Remove(br)
}

func (c *Cleaner) unwrapParagraph(p *html.Node) {
	c.stats.ParagraphsUnwrapped++
	if p.FirstChild != nil && gluesWords(p.PrevSibling, p.FirstChild) {
		dom.InsertBefore(p, dom.NewText(" "))
	}
	if p.LastChild != nil && gluesWords(p.LastChild, p.NextSibling) {
		dom.InsertAfter(p, dom.NewText(" "))
	}
	dom.Unwrap(p)
}

// emphasis canonicalizes strong/em nesting below li bottom-up, then merges
// adjacent em siblings.
func (c *Cleaner) emphasis(n *html.Node) {
	for _, child := range dom.ElementChildren(n) {
		c.emphasis(child)
	}
	for _, child := range dom.ElementChildren(n) {
		if child.DataAtom == atom.Strong && child.Parent == n {
			c.reorder(child)
		}
	}
	c.mergeAdjacent(n)
}

// reorder turns strong > em > x, y into em > (strong > x), y.
func (c *Cleaner) reorder(strong *html.Node) {
	kids := dom.SignificantChildren(strong)
	if len(kids) == 0 || !dom.IsElement(kids[0], atom.Em) {
		return
	}
	inner := kids[0]

	outer := dom.NewElement("em")
	bold := dom.NewElement("strong")
	dom.MoveChildren(inner, bold)
	outer.AppendChild(bold)
	for s := inner.NextSibling; s != nil; {
		next := s.NextSibling
		strong.RemoveChild(s)
		outer.AppendChild(s)
		s = next
	}
	strong.RemoveChild(inner)

	// Whitespace that preceded the em stays in front of the new em.
	for _, lead := range dom.Children(strong) {
		dom.InsertBefore(strong, lead)
	}
	dom.ReplaceWith(strong, outer)
	c.stats.EmphasisReordered++
}

// mergeAdjacent folds an em into a preceding em sibling when only
// whitespace separates them.
func (c *Cleaner) mergeAdjacent(n *html.Node) {
	for first := n.FirstChild; first != nil; first = first.NextSibling {
		if !dom.IsElement(first, atom.Em) {
			continue
		}
		for {
			next := dom.NextSignificantSibling(first)
			if !dom.IsElement(next, atom.Em) {
				break
			}
			for s := first.NextSibling; s != next; {
				gap := s.NextSibling
				n.RemoveChild(s)
				first.AppendChild(s)
				s = gap
			}
			dom.MoveChildren(next, first)
			dom.Remove(next)
			c.stats.EmphasisMerged++
		}
	}
}

// trimAnchor strips whitespace from both ends of the link text. Whitespace
// that separated the link from a neighbouring word is moved outside the link.
func (c *Cleaner) trimAnchor(a *html.Node) {
	changed := false

	if first := dom.FirstText(a); first != nil {
		trimmed := dom.TrimLeftSpace(first.Data)
		if trimmed != first.Data {
			changed = true
			if endsWithWord(a.PrevSibling) {
				dom.InsertBefore(a, dom.NewText(" "))
			}
			setOrRemove(first, trimmed)
		}
	}

	if last := dom.LastText(a); last != nil {
		trimmed := dom.TrimRightSpace(last.Data)
		if trimmed != last.Data {
			changed = true
			if startsWithWord(a.NextSibling) {
				dom.InsertAfter(a, dom.NewText(" "))
			}
			setOrRemove(last, trimmed)
		}
	}

	if changed {
		c.stats.AnchorsTrimmed++
	}
}

func setOrRemove(t *html.Node, s string) {
	if s == "" {
		dom.Remove(t)
		return
	}
	t.Data = s
}

// gluesWords reports whether removing what lies between before and after
// would join two words.
func gluesWords(before, after *html.Node) bool {
	return endsWithWord(before) && startsWithWord(after)
}

func endsWithWord(n *html.Node) bool {
	if n == nil || dom.IsBlock(n) {
		return false
	}
	s := dom.TextContent(n)
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && !unicode.IsSpace(r)
}

func startsWithWord(n *html.Node) bool {
	if n == nil || dom.IsBlock(n) {
		return false
	}
	s := dom.TextContent(n)
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && !unicode.IsSpace(r)
}
