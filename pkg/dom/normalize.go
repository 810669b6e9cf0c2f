package dom

import (
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var asciiSpaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

// CollapseSpace folds every run of ASCII whitespace to a single space.
func CollapseSpace(s string) string {
	return asciiSpaceRun.ReplaceAllString(s, " ")
}

// IsInlineOnly reports whether n can be laid out on a single line: a text
// node, or a non-block element with no block descendants.
func IsInlineOnly(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return !IsBlock(n) && !ContainsBlock(n)
	}
	return false
}

// HasBlockLayout reports whether n's children are laid out one per line:
// the fragment container and any element with block descendants.
func HasBlockLayout(n *html.Node) bool {
	if n.Type == html.DocumentNode {
		return true
	}
	return ContainsBlock(n)
}

// Normalize removes layout-only differences from the tree in place:
// adjacent text nodes are merged, ASCII whitespace runs collapse to one
// space, and in block layout whitespace-only text disappears and the edges
// of each inline run are trimmed. Content of pre elements is left alone.
// Formatting a normalized tree and parsing it back yields the same tree.
func Normalize(root *html.Node) *html.Node {
	normalize(root)
	return root
}

func normalize(n *html.Node) {
	if IsElement(n, atom.Pre) {
		return
	}

	mergeText(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			c.Data = CollapseSpace(c.Data)
		}
	}

	if HasBlockLayout(n) {
		trimRuns(n)
	}

	for _, c := range ElementChildren(n) {
		normalize(c)
	}
}

// mergeText joins adjacent text children and drops empty ones.
func mergeText(n *html.Node) {
	for _, c := range Children(n) {
		if c.Type != html.TextNode {
			continue
		}
		if c.Data == "" {
			n.RemoveChild(c)
			continue
		}
		if prev := c.PrevSibling; prev != nil && prev.Type == html.TextNode {
			prev.Data += c.Data
			n.RemoveChild(c)
		}
	}
}

// trimRuns trims the outer edges of every maximal run of inline-only
// children, removing text nodes that become empty.
func trimRuns(n *html.Node) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if first := run[0]; first.Type == html.TextNode {
			first.Data = TrimLeftSpace(first.Data)
		}
		if last := run[len(run)-1]; last.Type == html.TextNode {
			last.Data = TrimRightSpace(last.Data)
		}
		for _, c := range run {
			if c.Type == html.TextNode && c.Data == "" {
				n.RemoveChild(c)
			}
		}
		run = run[:0]
	}
	for _, c := range Children(n) {
		if IsInlineOnly(c) {
			run = append(run, c)
			continue
		}
		flush()
	}
	flush()
}

// Equivalent reports whether two trees are the same after Normalize. The
// inputs are not modified.
func Equivalent(a, b *html.Node) bool {
	return equalNodes(Normalize(Clone(a)), Normalize(Clone(b)))
}

func equalNodes(a, b *html.Node) bool {
	if a.Type != b.Type || a.Data != b.Data || len(a.Attr) != len(b.Attr) {
		return false
	}
	for i := range a.Attr {
		if a.Attr[i].Key != b.Attr[i].Key || a.Attr[i].Val != b.Attr[i].Val {
			return false
		}
	}
	ca, cb := a.FirstChild, b.FirstChild
	for ca != nil && cb != nil {
		if !equalNodes(ca, cb) {
			return false
		}
		ca, cb = ca.NextSibling, cb.NextSibling
	}
	return ca == nil && cb == nil
}
