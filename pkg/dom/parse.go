package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrParserUnavailable is returned when no parser is configured.
var ErrParserUnavailable = errors.New("markup parser unavailable")

// Parser turns markup text into a fragment tree and back.
type Parser interface {
	// Parse builds a best-effort tree from possibly malformed markup.
	Parse(text string) (*html.Node, error)

	// Serialize renders a tree back to raw markup with no layout.
	Serialize(root *html.Node) (string, error)
}

// HTMLParser is the Parser backed by golang.org/x/net/html.
type HTMLParser struct{}

// NewHTMLParser returns the default parser.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

// Parse implements Parser.
func (p *HTMLParser) Parse(text string) (*html.Node, error) {
	return Parse(text)
}

// Serialize implements Parser.
func (p *HTMLParser) Serialize(root *html.Node) (string, error) {
	return Serialize(root)
}

// Parse parses markup as a fragment in a body context. Full documents are
// accepted too: their body content becomes the fragment. Comments, doctypes
// and processing artifacts are dropped so only elements and text remain.
func Parse(text string) (*html.Node, error) {
	var nodes []*html.Node
	if isFullDocument(text) {
		doc, err := html.Parse(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
		if body := findBody(doc); body != nil {
			nodes = Children(body)
		}
	} else {
		context := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Body,
			Data:     "body",
		}
		var err error
		nodes, err = html.ParseFragment(strings.NewReader(text), context)
		if err != nil {
			return nil, fmt.Errorf("parsing fragment: %w", err)
		}
	}

	root := NewFragment(nodes...)
	prune(root)
	return root, nil
}

// Serialize renders the children of root without any layout.
func Serialize(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("rendering %s: %w", c.Data, err)
		}
	}
	return sb.String(), nil
}

// MustParse is Parse for tests and literals; it panics on error.
func MustParse(text string) *html.Node {
	root, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return root
}

// MustSerialize is Serialize for tests; it panics on error.
func MustSerialize(root *html.Node) string {
	s, err := Serialize(root)
	if err != nil {
		panic(err)
	}
	return s
}

func isFullDocument(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

func findBody(n *html.Node) *html.Node {
	if IsElement(n, atom.Body) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// prune removes every node that is neither an element nor text.
func prune(n *html.Node) {
	for _, c := range Children(n) {
		switch c.Type {
		case html.ElementNode:
			prune(c)
		case html.TextNode:
		default:
			n.RemoveChild(c)
		}
	}
}
