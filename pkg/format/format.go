// Package format renders a document tree as indented, human-readable markup.
//
// Block elements start on their own line, indented by depth. Anything that
// can be laid out inline stays on one line. The output parses back to a tree
// that is dom.Equivalent to the input, so formatting is stable: formatting
// the parse of formatted output reproduces it exactly.
package format

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// Options configures the formatter.
type Options struct {
	// Indent is repeated once per depth level. Defaults to two spaces.
	Indent string
}

// DefaultOptions returns the default formatter options.
func DefaultOptions() Options {
	return Options{Indent: "  "}
}

// Formatter renders trees. It is stateless and safe for concurrent use.
type Formatter struct {
	opts Options
}

// New creates a Formatter. An empty Indent falls back to the default.
func New(opts Options) *Formatter {
	if opts.Indent == "" {
		opts.Indent = DefaultOptions().Indent
	}
	return &Formatter{opts: opts}
}

// Format renders root with the default options.
func Format(root *html.Node) string {
	return New(DefaultOptions()).Format(root)
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", dom.NBSP, "&nbsp;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// Format renders the children of root. root itself is not modified.
func (f *Formatter) Format(root *html.Node) string {
	tree := dom.Normalize(dom.Clone(root))

	w := &writer{indent: f.opts.Indent}
	if tree.Type == html.DocumentNode {
		w.blockChildren(tree, 0)
	} else {
		w.node(tree, 0)
	}
	return strings.Join(collapseBlankLines(w.lines), "\n")
}

type writer struct {
	indent string
	lines  []string
}

func (w *writer) emit(depth int, s string) {
	w.lines = append(w.lines, strings.Repeat(w.indent, depth)+s)
}

// blockChildren lays out n's children one per line, keeping each run of
// inline content together on a single line.
func (w *writer) blockChildren(n *html.Node, depth int) {
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			w.emit(depth, run.String())
			run.Reset()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsInlineOnly(c) {
			writeInline(&run, c)
			continue
		}
		flush()
		w.node(c, depth)
	}
	flush()
}

func (w *writer) node(n *html.Node, depth int) {
	switch {
	case n.Type != html.ElementNode:
		var sb strings.Builder
		writeInline(&sb, n)
		w.emit(depth, sb.String())
	case dom.IsSpacingParagraph(n):
		w.emit(depth, "<p>&nbsp;</p>")
	case dom.IsVoid(n):
		w.emit(depth, openTag(n))
	case n.DataAtom == atom.Pre:
		w.verbatim(n, depth)
	case !dom.ContainsBlock(n), isCompactItem(n):
		var sb strings.Builder
		writeInline(&sb, n)
		w.emit(depth, sb.String())
	default:
		w.emit(depth, openTag(n))
		w.blockChildren(n, depth+1)
		w.emit(depth, closeTag(n))
	}
}

// verbatim renders pre exactly as the parser needs to see it again. The
// content may span lines and is never re-indented.
func (w *writer) verbatim(n *html.Node, depth int) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		writeInline(&sb, n)
	}
	w.emit(depth, sb.String())
}

// isCompactItem reports an li whose children are all paragraphs with
// inline content. Such items are written on one line.
func isCompactItem(n *html.Node) bool {
	if n.DataAtom != atom.Li || n.FirstChild == nil {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !dom.IsElement(c, atom.P) || dom.ContainsBlock(c) {
			return false
		}
	}
	return true
}

// writeInline renders n and its subtree without line breaks.
func writeInline(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(textEscaper.Replace(n.Data))
	case html.ElementNode:
		sb.WriteString(openTag(n))
		if dom.IsVoid(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInline(sb, c)
		}
		sb.WriteString(closeTag(n))
	}
}

func openTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		sb.WriteByte(' ')
		if a.Namespace != "" {
			sb.WriteString(a.Namespace)
			sb.WriteByte(':')
		}
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}

func closeTag(n *html.Node) string {
	return "</" + n.Data + ">"
}

// collapseBlankLines keeps at most one blank line between non-blank lines
// and drops blank lines at either end.
func collapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	blank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			blank++
			continue
		}
		if blank > 0 && len(out) > 0 {
			out = append(out, "")
		}
		blank = 0
		out = append(out, l)
	}
	return out
}
