package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Children returns a snapshot of n's children. Iterating the snapshot stays
// well defined while the live list is mutated.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns a snapshot of n's element children.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// SignificantChildren returns a snapshot of n's children without
// whitespace-only text nodes.
func SignificantChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsWhitespaceText(c) {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits root and its descendants depth-first in pre-order. Each node's
// children are snapshotted before they are visited, so fn may insert or
// remove siblings. Nodes detached by fn before their turn are skipped.
// Returning false from fn skips the node's subtree.
func Walk(root *html.Node, fn func(*html.Node) bool) {
	if !fn(root) {
		return
	}
	for _, c := range Children(root) {
		if c.Parent != root {
			continue
		}
		Walk(c, fn)
	}
}

// WalkElements is Walk restricted to elements.
func WalkElements(root *html.Node, fn func(*html.Node) bool) {
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return n == root
		}
		return fn(n)
	})
}

// FindAll returns a snapshot of every descendant element matching one of tags,
// in document order.
func FindAll(root *html.Node, tags ...atom.Atom) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if IsElement(c, tags...) {
			out = append(out, c)
		}
		out = append(out, FindAll(c, tags...)...)
	}
	return out
}

// NextElementSibling returns the next sibling element, skipping text.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PrevElementSibling returns the previous sibling element, skipping text.
func PrevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextSignificantSibling returns the next sibling that is not whitespace-only text.
func NextSignificantSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if !IsWhitespaceText(s) {
			return s
		}
	}
	return nil
}

// PrevSignificantSibling returns the previous sibling that is not whitespace-only text.
func PrevSignificantSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if !IsWhitespaceText(s) {
			return s
		}
	}
	return nil
}

// ClosestAncestor returns the nearest proper ancestor element with one of tags.
func ClosestAncestor(n *html.Node, tags ...atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p, tags...) {
			return p
		}
	}
	return nil
}

// TopLevel returns the ancestor of n (or n itself) whose parent is the
// fragment container. It returns nil for the container and detached nodes.
func TopLevel(n *html.Node) *html.Node {
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		if cur.Parent.Type == html.DocumentNode {
			return cur
		}
	}
	return nil
}

// IsTopLevel reports whether n is a direct child of the fragment container.
func IsTopLevel(n *html.Node) bool {
	return n.Parent != nil && n.Parent.Type == html.DocumentNode
}
