package sanitize

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

// Hints are the presentation hints carried by an inline style that have a
// semantic equivalent.
type Hints struct {
	Italic      bool
	Bold        bool
	Superscript bool
	Subscript   bool

	// Regular and Upright record an explicit font-weight:normal or
	// font-style:normal, which word processors put on wrapper elements.
	Regular bool
	Upright bool
}

// Any reports whether at least one hint is set.
func (h Hints) Any() bool {
	return h.Italic || h.Bold || h.Superscript || h.Subscript
}

// HintsOf reads the style attribute of n. A missing or malformed style
// yields no hints.
func HintsOf(n *html.Node) Hints {
	style, ok := dom.Attr(n, "style")
	if !ok {
		return Hints{}
	}
	return ParseHints(style)
}

// ParseHints extracts hints from an inline style declaration list such as
// "font-weight:700; font-style: italic".
func ParseHints(style string) Hints {
	var h Hints
	if strings.TrimSpace(style) == "" {
		return h
	}

	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		prop := strings.ToLower(string(data))
		val := declarationValue(p.Values())
		switch prop {
		case "font-weight":
			h.Bold = isBoldWeight(val)
			h.Regular = val == "normal" || val == "400" || val == "lighter"
		case "font-style":
			h.Italic = val == "italic" || val == "oblique" || strings.HasPrefix(val, "oblique ")
			h.Upright = val == "normal"
		case "vertical-align":
			switch val {
			case "super":
				h.Superscript, h.Subscript = true, false
			case "sub":
				h.Subscript, h.Superscript = true, false
			default:
				h.Superscript, h.Subscript = false, false
			}
		}
	}
	return h
}

func declarationValue(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	val := strings.ToLower(strings.TrimSpace(sb.String()))
	val = strings.TrimSpace(strings.TrimSuffix(val, "!important"))
	return val
}

func isBoldWeight(val string) bool {
	switch val {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(val)
	if err != nil {
		return false
	}
	return w >= 600
}
