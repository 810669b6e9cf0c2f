package transform

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

var requiredRel = []string{"noopener", "noreferrer"}

// addLinkAttributes makes every link open in a new tab without leaking the
// opener or referrer. Existing rel tokens are kept and missing ones added.
func addLinkAttributes(root *html.Node) int {
	changes := 0
	for _, a := range dom.FindAll(root, atom.A) {
		if _, ok := dom.Attr(a, "href"); !ok {
			continue
		}
		changed := false
		if _, ok := dom.Attr(a, "target"); !ok {
			dom.SetAttr(a, "target", "_blank")
			changed = true
		}
		rel, ok := dom.Attr(a, "rel")
		if merged := mergeTokens(rel, requiredRel); !ok || merged != rel {
			dom.SetAttr(a, "rel", merged)
			changed = true
		}
		if changed {
			changes++
		}
	}
	return changes
}

// mergeTokens appends the tokens missing from a space-separated set. An
// existing value without missing tokens is returned unchanged.
func mergeTokens(value string, want []string) string {
	tokens := strings.Fields(value)
	have := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		have[strings.ToLower(t)] = true
	}
	var missing []string
	for _, w := range want {
		if !have[w] {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return value
	}
	return strings.Join(append(tokens, missing...), " ")
}

// relativizeLinks rewrites absolute link targets to their path, query and
// fragment. Hrefs that do not parse or carry no host are left alone.
func relativizeLinks(root *html.Node) int {
	changes := 0
	for _, a := range dom.FindAll(root, atom.A) {
		href, ok := dom.Attr(a, "href")
		if !ok {
			continue
		}
		rel, ok := relativePath(href)
		if !ok || rel == href {
			continue
		}
		dom.SetAttr(a, "href", rel)
		changes++
	}
	return changes
}

func relativePath(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}

	var sb strings.Builder
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	sb.WriteString(path)
	if u.RawQuery != "" || u.ForceQuery {
		sb.WriteString("?")
		sb.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		sb.WriteString("#")
		sb.WriteString(u.EscapedFragment())
	}
	return sb.String(), true
}
