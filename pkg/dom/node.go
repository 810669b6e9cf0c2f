// Package dom is the document tree shared by every pipeline stage.
//
// A tree is an *html.Node of type DocumentNode acting as a fragment container:
// its children are the top-level siblings of the pasted document. Below the
// container only ElementNode and TextNode values appear. Stages mutate the
// tree in place using the helpers in this package; children are always
// snapshotted before iteration so insertion and removal during a walk is safe.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NBSP is the non-breaking space that forms a spacing paragraph.
const NBSP = "\u00a0"

// NewFragment creates an empty fragment container holding the given nodes.
func NewFragment(nodes ...*html.Node) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return root
}

// NewElement creates a detached element with the given tag and children.
func NewElement(tag string, children ...*html.Node) *html.Node {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
	return n
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// NewSpacingParagraph creates the section separator <p>&nbsp;</p>.
func NewSpacingParagraph() *html.Node {
	return NewElement("p", NewText(NBSP))
}

// IsElement reports whether n is an element with one of the given tags.
// With no tags it reports whether n is any element.
func IsElement(n *html.Node, tags ...atom.Atom) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.DataAtom == t {
			return true
		}
	}
	return false
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsWhitespaceText reports whether n is a text node containing only ASCII
// whitespace. Non-breaking spaces are content, not whitespace.
func IsWhitespaceText(n *html.Node) bool {
	return IsText(n) && strings.Trim(n.Data, asciiSpace) == ""
}

// asciiSpace is the HTML notion of inter-element whitespace.
const asciiSpace = " \t\n\r\f"

// TrimSpace trims ASCII whitespace, leaving non-breaking spaces in place.
func TrimSpace(s string) string {
	return strings.Trim(s, asciiSpace)
}

// TrimLeftSpace trims leading ASCII whitespace.
func TrimLeftSpace(s string) string {
	return strings.TrimLeft(s, asciiSpace)
}

// TrimRightSpace trims trailing ASCII whitespace.
func TrimRightSpace(s string) string {
	return strings.TrimRight(s, asciiSpace)
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its position if it already exists.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// TextContent returns the concatenation of every descendant text node.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode:
				collect(c)
			}
		}
	}
	collect(n)
	return sb.String()
}

// FirstText returns the first descendant text node of n.
func FirstText(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c
		}
		if t := FirstText(c); t != nil {
			return t
		}
	}
	return nil
}

// LastText returns the last descendant text node of n.
func LastText(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.TextNode {
			return c
		}
		if t := LastText(c); t != nil {
			return t
		}
	}
	return nil
}
