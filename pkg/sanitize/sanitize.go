// Package sanitize reduces a pasted document tree to an allow-listed
// semantic subset. Presentational styles with a semantic meaning (bold,
// italic, superscript, subscript) are turned into elements before the
// styling is discarded.
package sanitize

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// AllowedTags is the semantic allow-list that survives sanitization.
var AllowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr", "ul", "ol", "li",
	"em", "i", "strong", "b", "sup", "sub",
	"a", "img", "blockquote", "pre", "code",
	"table", "thead", "tbody", "tr", "th", "td",
}

// AllowedAttributes lists the attributes kept per tag. Every other
// attribute is removed.
var AllowedAttributes = map[string][]string{
	"a":   {"href"},
	"img": {"src", "alt"},
}

var (
	allowed = func() map[atom.Atom]bool {
		m := make(map[atom.Atom]bool, len(AllowedTags))
		for _, t := range AllowedTags {
			m[atom.Lookup([]byte(t))] = true
		}
		return m
	}()

	// Elements whose content is never document text.
	dropWithContent = map[atom.Atom]bool{
		atom.Script: true, atom.Style: true, atom.Head: true, atom.Title: true,
		atom.Meta: true, atom.Link: true, atom.Noscript: true, atom.Template: true,
		atom.Iframe: true, atom.Object: true, atom.Embed: true, atom.Svg: true,
		atom.Math: true, atom.Colgroup: true, atom.Col: true,
	}

	// Containers that accept a paragraph in place of an unwrapped block.
	flowContainers = map[atom.Atom]bool{
		atom.Blockquote: true, atom.Li: true, atom.Td: true, atom.Th: true,
	}

	// urlAttributes are checked with SafeURL.
	urlAttributes = map[string]bool{"href": true, "src": true}
)

// Stats counts what a sanitizer run changed.
type Stats struct {
	ElementsUnwrapped int `json:"elements_unwrapped"`
	ElementsDropped   int `json:"elements_dropped"`
	AttributesRemoved int `json:"attributes_removed"`
	URLsRejected      int `json:"urls_rejected"`
	HintsConverted    int `json:"hints_converted"`
}

// Total returns the number of changes, counting hint conversions but not
// the elements they replaced.
func (s Stats) Total() int {
	return s.ElementsUnwrapped + s.ElementsDropped + s.AttributesRemoved + s.URLsRejected + s.HintsConverted
}

// Sanitizer applies the allow-list to a tree.
type Sanitizer struct {
	stats Stats
}

// New creates a Sanitizer.
func New() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize is a convenience for New().Sanitize(root).
func Sanitize(root *html.Node) *html.Node {
	return New().Sanitize(root)
}

// Stats returns the counters accumulated by Sanitize calls.
func (s *Sanitizer) Stats() Stats {
	return s.stats
}

// IsAllowed reports whether n is an element on the allow-list.
func IsAllowed(n *html.Node) bool {
	return dom.IsElement(n) && allowed[n.DataAtom] && n.Namespace == ""
}

// Sanitize mutates root in place and returns it.
func (s *Sanitizer) Sanitize(root *html.Node) *html.Node {
	for _, c := range dom.Children(root) {
		s.node(c)
	}
	s.unwrapOuterWrapper(root)
	return root
}

func (s *Sanitizer) node(n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}

	switch {
	case dropWithContent[n.DataAtom]:
		s.stats.ElementsDropped++
		dom.Remove(n)
		return
	case n.DataAtom == atom.Tfoot:
		// A bare row group would be re-wrapped in tbody by the parser.
		n.Data, n.DataAtom = "tbody", atom.Tbody
	case n.DataAtom == atom.Caption:
		s.captionToParagraph(n)
		return
	}

	if !IsAllowed(n) {
		s.disallowed(n)
		return
	}

	hints := HintsOf(n)
	if isNeutralWrapper(n, hints) {
		for _, c := range dom.Children(n) {
			s.node(c)
		}
		s.stats.ElementsUnwrapped++
		dom.Unwrap(n)
		return
	}

	s.stripAttributes(n)
	if outer, inner := hintWrappers(hints, n.DataAtom); outer != nil && !dom.IsVoid(n) {
		s.stats.HintsConverted++
		dom.MoveChildren(n, inner)
		n.AppendChild(outer)
	}

	for _, c := range dom.Children(n) {
		s.node(c)
	}
}

// disallowed handles an element outside the allow-list: its children are
// sanitized first, then it is replaced by hint wrappers or unwrapped. A
// block holding only inline content becomes a paragraph, around the hint
// wrappers if it has any, so that adjacent blocks stay separate.
func (s *Sanitizer) disallowed(n *html.Node) {
	for _, c := range dom.Children(n) {
		s.node(c)
	}

	asParagraph := dom.IsBlock(n) && n.FirstChild != nil && acceptsParagraph(n.Parent) && allInlineOnly(n)

	hints := HintsOf(n)
	outer, inner := hintWrappers(hints, 0)
	if outer != nil && hasVisibleContent(n) {
		s.stats.HintsConverted++
		dom.MoveChildren(n, inner)
		if asParagraph {
			outer = dom.NewElement("p", outer)
		}
		dom.ReplaceWith(n, outer)
		return
	}

	if asParagraph {
		p := dom.NewElement("p")
		dom.MoveChildren(n, p)
		dom.ReplaceWith(n, p)
		s.stats.ElementsUnwrapped++
		return
	}

	s.stats.ElementsUnwrapped++
	dom.Unwrap(n)
}

func (s *Sanitizer) captionToParagraph(n *html.Node) {
	p := dom.NewElement("p")
	dom.MoveChildren(n, p)
	if table := dom.ClosestAncestor(n, atom.Table); table != nil && table.Parent != nil {
		dom.InsertBefore(table, p)
	} else {
		dom.InsertBefore(n, p)
	}
	dom.Remove(n)
	s.stats.ElementsUnwrapped++
	s.node(p)
}

func (s *Sanitizer) stripAttributes(n *html.Node) {
	if len(n.Attr) == 0 {
		return
	}
	keep := AllowedAttributes[n.Data]
	kept := make([]html.Attribute, 0, len(keep))
	for _, a := range n.Attr {
		if a.Namespace != "" || !contains(keep, a.Key) {
			s.stats.AttributesRemoved++
			continue
		}
		if urlAttributes[a.Key] {
			v, ok := SafeURL(a.Val)
			if !ok {
				s.stats.URLsRejected++
				s.stats.AttributesRemoved++
				continue
			}
			a.Val = v
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// unwrapOuterWrapper removes a lone top-level inline element that only
// wraps block content, as produced by some word processors.
func (s *Sanitizer) unwrapOuterWrapper(root *html.Node) {
	kids := dom.SignificantChildren(root)
	if len(kids) != 1 {
		return
	}
	n := kids[0]
	if !dom.IsElement(n) || dom.IsBlock(n) || !dom.ContainsBlock(n) {
		return
	}
	s.stats.ElementsUnwrapped++
	dom.Unwrap(n)
}

// hintWrappers builds sup|sub > strong > em for the hints present and
// returns the outermost and innermost wrapper. Semantics already carried by
// the element tag self are skipped.
func hintWrappers(h Hints, self atom.Atom) (outer, inner *html.Node) {
	var chain []*html.Node
	if h.Superscript && self != atom.Sup {
		chain = append(chain, dom.NewElement("sup"))
	} else if h.Subscript && self != atom.Sub {
		chain = append(chain, dom.NewElement("sub"))
	}
	if h.Bold && self != atom.Strong && self != atom.B {
		chain = append(chain, dom.NewElement("strong"))
	}
	if h.Italic && self != atom.Em && self != atom.I {
		chain = append(chain, dom.NewElement("em"))
	}
	if len(chain) == 0 {
		return nil, nil
	}
	for i := 1; i < len(chain); i++ {
		chain[i-1].AppendChild(chain[i])
	}
	return chain[0], chain[len(chain)-1]
}

// isNeutralWrapper reports a b/strong styled font-weight:normal or an i/em
// styled font-style:normal: a formatting tag that formats nothing.
func isNeutralWrapper(n *html.Node, h Hints) bool {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		return h.Regular
	case atom.I, atom.Em:
		return h.Upright
	}
	return false
}

func hasVisibleContent(n *html.Node) bool {
	if dom.TrimSpace(dom.TextContent(n)) != "" {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// acceptsParagraph looks through disallowed block ancestors, which are about
// to be unwrapped, for the container the paragraph will end up in.
func acceptsParagraph(parent *html.Node) bool {
	for p := parent; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode || flowContainers[p.DataAtom] {
			return true
		}
		if IsAllowed(p) || !dom.IsBlock(p) {
			return false
		}
	}
	return false
}

func allInlineOnly(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsInlineOnly(c) {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
