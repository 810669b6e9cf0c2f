package dom

import "golang.org/x/net/html"

// Remove detaches n from its parent. Detached nodes are left untouched.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore inserts n immediately before ref.
func InsertBefore(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref)
}

// InsertAfter inserts n immediately after ref.
func InsertAfter(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Prepend inserts c as the first child of n.
func Prepend(n, c *html.Node) {
	Remove(c)
	n.InsertBefore(c, n.FirstChild)
}

// Unwrap splices n's children into n's position and removes n.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for _, c := range Children(n) {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// ReplaceWith puts repl where n was and detaches n.
func ReplaceWith(n, repl *html.Node) {
	if n.Parent == nil {
		return
	}
	Remove(repl)
	n.Parent.InsertBefore(repl, n)
	n.Parent.RemoveChild(n)
}

// MoveChildren moves every child of from to the end of to.
func MoveChildren(from, to *html.Node) {
	for _, c := range Children(from) {
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}

// WrapChildren moves all of n's children into wrapper and appends wrapper to n.
func WrapChildren(n, wrapper *html.Node) *html.Node {
	MoveChildren(n, wrapper)
	n.AppendChild(wrapper)
	return wrapper
}

// Clone deep-copies n. The copy is detached.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for k := n.FirstChild; k != nil; k = k.NextSibling {
		c.AppendChild(Clone(k))
	}
	return c
}

// PrependText puts s at the start of n's content, merging into a leading
// text node when there is one.
func PrependText(n *html.Node, s string) {
	if c := n.FirstChild; c != nil && c.Type == html.TextNode {
		c.Data = s + TrimLeftSpace(c.Data)
		return
	}
	Prepend(n, NewText(s))
}
