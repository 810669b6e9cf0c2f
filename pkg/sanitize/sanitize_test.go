package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

func sanitizeString(t *testing.T, in string) string {
	t.Helper()
	root, err := dom.Parse(in)
	require.NoError(t, err)
	return dom.MustSerialize(Sanitize(root))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bold span becomes strong",
			in:   `<span style="font-weight:bold">x</span>`,
			want: `<strong>x</strong>`,
		},
		{
			name: "numeric weight and italic nest strong then em",
			in:   `<span style="font-weight: 700; font-style: italic">x</span>`,
			want: `<strong><em>x</em></strong>`,
		},
		{
			name: "superscript is outermost",
			in:   `<span style="vertical-align:super;font-weight:bold">2</span>`,
			want: `<sup><strong>2</strong></sup>`,
		},
		{
			name: "plain span is unwrapped",
			in:   `<p>a <span class="x">b</span> c</p>`,
			want: `<p>a b c</p>`,
		},
		{
			name: "nested formatting inside disallowed element is kept",
			in:   `<p><font face="Arial"><span style="font-style:italic">a</span></font></p>`,
			want: `<p><em>a</em></p>`,
		},
		{
			name: "allowed element with hint wraps its children",
			in:   `<p style="font-weight:bold">x <a href="/y">y</a></p>`,
			want: `<p><strong>x <a href="/y">y</a></strong></p>`,
		},
		{
			name: "hint matching the element is not doubled",
			in:   `<b style="font-weight:bold">x</b>`,
			want: `<b>x</b>`,
		},
		{
			name: "attributes outside the allow-list are stripped",
			in:   `<a href="https://example.com" class="c" onclick="x()" target="_self">l</a><img src="/i.png" alt="i" width="3">`,
			want: `<a href="https://example.com">l</a><img src="/i.png" alt="i"/>`,
		},
		{
			name: "unsafe url drops only the attribute",
			in:   `<a href="javascript:alert(1)">l</a>`,
			want: `<a>l</a>`,
		},
		{
			name: "relative path is rejected",
			in:   `<a href="page.html">l</a>`,
			want: `<a>l</a>`,
		},
		{
			name: "script and style are removed with content",
			in:   `<style>p{}</style><p>t</p><script>x()</script>`,
			want: `<p>t</p>`,
		},
		{
			name: "word processor wrapper is unwrapped",
			in:   `<b style="font-weight:normal;" id="docs-internal-guid-1"><p dir="ltr"><span>a</span></p><p>b</p></b>`,
			want: `<p>a</p><p>b</p>`,
		},
		{
			name: "lone inline wrapper around blocks is unwrapped",
			in:   `<em><h2>a</h2><p>b</p></em>`,
			want: `<h2>a</h2><p>b</p>`,
		},
		{
			name: "div with inline content becomes a paragraph",
			in:   `<div>a</div><div><div>b</div><div>c</div></div>`,
			want: `<p>a</p><p>b</p><p>c</p>`,
		},
		{
			name: "styled divs keep their block boundary",
			in:   `<div style="font-weight:bold">a</div><div style="font-weight:bold">b</div>`,
			want: `<p><strong>a</strong></p><p><strong>b</strong></p>`,
		},
		{
			name: "styled div with block content is replaced by its hints",
			in:   `<div style="font-style:italic"><h2>a</h2></div>`,
			want: `<em><h2>a</h2></em>`,
		},
		{
			name: "empty styled span leaves nothing",
			in:   `<p>a<span style="font-weight:bold"> </span>b</p>`,
			want: `<p>a b</p>`,
		},
		{
			name: "malformed style is ignored",
			in:   `<span style="font-weight:;;{{">x</span>`,
			want: `x`,
		},
		{
			name: "caption becomes a paragraph before the table",
			in:   `<table><caption>Cap</caption><tr><td>1</td></tr></table>`,
			want: `<p>Cap</p><table><tbody><tr><td>1</td></tr></tbody></table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeString(t, tt.in))
		})
	}
}

const wordPaste = `<html xmlns:o="urn:schemas-microsoft-com:office:office"><head><style>.MsoNormal{}</style></head>
<body lang=EN-US>
<div class=WordSection1>
<h1 style="mso-margin-top-alt:auto">Title<o:p></o:p></h1>
<p class=MsoNormal><b><span style='font-family:"Calibri"'>Lead:</span></b><span> text with <a href="http://example.com/a?b=1" style="color:blue">link</a></span><o:p>&nbsp;</o:p></p>
<ul style="margin-top:0in"><li class=MsoListParagraph style="mso-list:l0 level1 lfo1"><span style="font-style:italic">item</span></li></ul>
<table class=MsoTableGrid border=1 cellpadding=0><tr><td width=100 valign=top><p class=MsoNormal>cell</p></td></tr></table>
<p class=MsoNormal><span style="vertical-align:sub">2</span><img src="https://example.com/x.png" v:shapes="_x0000_i1025"></p>
<!--[if !supportLists]--><p>after</p><!--[endif]-->
</div>
</body></html>`

func TestSanitize_AllowListClosure(t *testing.T) {
	inputs := []string{
		wordPaste,
		`<span style="font-weight:bold">x</span>`,
		`<section><article><header><nav>n</nav></header><figure><figcaption>c</figcaption></figure></article></section>`,
		`<form><input name="q"><button onclick="x">go</button></form><iframe src="https://x"></iframe>`,
		`<dl><dt>t</dt><dd>d</dd></dl><u>u</u><s>s</s><mark>m</mark><abbr title="a">a</abbr>`,
		`<a href="data:text/html;base64,xx" name="n">a</a><img src="javascript:x" alt="a" onerror="y">`,
	}

	for _, in := range inputs {
		root, err := dom.Parse(in)
		require.NoError(t, err)
		Sanitize(root)

		dom.WalkElements(root, func(n *html.Node) bool {
			assert.True(t, IsAllowed(n), "tag %q survived", n.Data)
			keep := AllowedAttributes[n.Data]
			for _, a := range n.Attr {
				assert.Contains(t, keep, a.Key, "attribute %q survived on %q", a.Key, n.Data)
			}
			return true
		})
	}
}

func TestSanitize_BluemondayAgrees(t *testing.T) {
	root, err := dom.Parse(wordPaste)
	require.NoError(t, err)
	out := dom.MustSerialize(Sanitize(root))

	filtered := Policy().Sanitize(out)
	assert.True(t, dom.Equivalent(dom.MustParse(out), dom.MustParse(filtered)),
		"bluemonday changed sanitized output:\n%s\n%s", out, filtered)
}

func TestSanitize_Stats(t *testing.T) {
	root := dom.MustParse(`<span style="font-weight:bold">x</span><p class="a">y</p><script>z</script><a href="javascript:x">l</a>`)
	s := New()
	s.Sanitize(root)

	stats := s.Stats()
	assert.Equal(t, 1, stats.HintsConverted)
	assert.Equal(t, 1, stats.ElementsDropped)
	assert.Equal(t, 1, stats.URLsRejected)
	assert.Equal(t, 2, stats.AttributesRemoved)
	assert.Equal(t, stats.ElementsUnwrapped+5, stats.Total())
}

func TestParseHints(t *testing.T) {
	tests := []struct {
		style string
		want  Hints
	}{
		{"font-weight:bold", Hints{Bold: true}},
		{"font-weight: 600", Hints{Bold: true}},
		{"font-weight:500", Hints{}},
		{"font-weight:normal", Hints{Regular: true}},
		{"FONT-STYLE: Italic", Hints{Italic: true}},
		{"font-style:normal", Hints{Upright: true}},
		{"vertical-align:super", Hints{Superscript: true}},
		{"vertical-align:sub; vertical-align:baseline", Hints{}},
		{"font-weight:bold !important", Hints{Bold: true}},
		{"color:red", Hints{}},
		{"", Hints{}},
		{"font-weight", Hints{}},
		{";;;::", Hints{}},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHints(tt.style))
		})
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://example.com/x", "https://example.com/x", true},
		{" http://example.com ", "http://example.com", true},
		{"mailto:a@b.c", "mailto:a@b.c", true},
		{"/root/relative", "/root/relative", true},
		{"#section", "#section", true},
		{"//evil.example", "", false},
		{"javascript:alert(1)", "", false},
		{"JaVaScRiPt:alert(1)", "", false},
		{"data:text/html,x", "", false},
		{"relative/path", "", false},
		{"http://", "", false},
		{"mailto:", "", false},
		{"http://[::1", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SafeURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
