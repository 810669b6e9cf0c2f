package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blocks inline and void",
			in:   `<h2><strong>T</strong></h2><p>a <em>b</em></p><ul><li>x</li><li><p>y</p><p>z</p></li></ul><p>` + dom.NBSP + `</p><hr><img src="/i.png" alt="i">`,
			want: lines(
				`<h2><strong>T</strong></h2>`,
				`<p>a <em>b</em></p>`,
				`<ul>`,
				`  <li>x</li>`,
				`  <li><p>y</p><p>z</p></li>`,
				`</ul>`,
				`<p>&nbsp;</p>`,
				`<hr>`,
				`<img src="/i.png" alt="i">`,
			),
		},
		{
			name: "nesting is indented",
			in:   `<blockquote><p>q</p></blockquote><table><tbody><tr><td>1</td><td><p>a</p><p>b</p></td></tr></tbody></table>`,
			want: lines(
				`<blockquote>`,
				`  <p>q</p>`,
				`</blockquote>`,
				`<table>`,
				`  <tbody>`,
				`    <tr>`,
				`      <td>1</td>`,
				`      <td>`,
				`        <p>a</p>`,
				`        <p>b</p>`,
				`      </td>`,
				`    </tr>`,
				`  </tbody>`,
				`</table>`,
			),
		},
		{
			name: "layout whitespace is dropped and inline whitespace collapsed",
			in:   "\n  <p>  a\n  b </p>\n\n\n<p>c</p>\n",
			want: lines(`<p> a b </p>`, `<p>c</p>`),
		},
		{
			name: "inline run between blocks stays on one line",
			in:   "<p>a</p>\n  text <strong>bold</strong> more\n<p>b</p>",
			want: lines(`<p>a</p>`, `text <strong>bold</strong> more`, `<p>b</p>`),
		},
		{
			name: "escaping",
			in:   `<p>a &amp; b &lt;c&gt; "q"</p><a href="/x?a=1&amp;b=&quot;2&quot;">l</a>`,
			want: lines(`<p>a &amp; b &lt;c&gt; "q"</p>`, `<a href="/x?a=1&amp;b=&quot;2&quot;">l</a>`),
		},
		{
			name: "inline wrapper around a block is laid out as a block",
			in:   `<ol><li><strong><h3>x</h3></strong></li></ol>`,
			want: lines(
				`<ol>`,
				`  <li>`,
				`    <strong>`,
				`      <h3>x</h3>`,
				`    </strong>`,
				`  </li>`,
				`</ol>`,
			),
		},
		{
			name: "break inside a paragraph",
			in:   `<p>a<br>b</p>`,
			want: `<p>a<br>b</p>`,
		},
		{
			name: "preformatted content is verbatim",
			in:   "<div><pre>  a\n\n\n\n  b</pre></div>",
			want: lines(`<div>`, "  <pre>  a\n\n\n\n  b</pre>", `</div>`),
		},
		{
			name: "empty input",
			in:   "  \n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(dom.MustParse(tt.in)))
		})
	}
}

func TestFormat_Indent(t *testing.T) {
	got := New(Options{Indent: "\t"}).Format(dom.MustParse(`<ul><li>a</li></ul>`))
	assert.Equal(t, "<ul>\n\t<li>a</li>\n</ul>", got)

	got = New(Options{}).Format(dom.MustParse(`<ul><li>a</li></ul>`))
	assert.Equal(t, "<ul>\n  <li>a</li>\n</ul>", got)
}

func TestFormat_DoesNotModifyInput(t *testing.T) {
	root := dom.MustParse("<p>  a  </p>\n\n<p>b</p>")
	before := dom.MustSerialize(root)
	Format(root)
	assert.Equal(t, before, dom.MustSerialize(root))
}

func TestFormat_LeftInverse(t *testing.T) {
	corpus := []string{
		`<h2><strong>Key Takeaways:</strong></h2><ul><li><strong>A:</strong> text</li></ul><p>` + dom.NBSP + `</p>`,
		`<p>one <a href="/x" target="_blank" rel="noopener noreferrer">link</a> two</p><p><em> lead</em>trail </p>`,
		`<ul><li>a<ul><li>b</li><li><em>c</em> d</li></ul></li><li><p>p1</p><p>p2</p></li></ul>`,
		`<strong><h2>a</h2><p>b</p></strong><em>x</em> y`,
		`<table><thead><tr><th>h</th></tr></thead><tbody><tr><td>1 &amp; 2</td></tr></tbody></table>`,
		"<pre>\n\nindented\n   code</pre><p>after</p>",
		`<blockquote><p>q</p>tail <sup>2</sup></blockquote><p>a<br>b</p><hr><img src="/i.png" alt="">`,
		`<ol><li><strong><h3>One</h3></strong></li></ol><p>Sources:</p>`,
	}

	for _, in := range corpus {
		t.Run(in, func(t *testing.T) {
			tree := dom.MustParse(in)
			out := Format(tree)

			reparsed := dom.MustParse(out)
			assert.True(t, dom.Equivalent(tree, reparsed), "tree changed:\n%s", out)
			assert.Equal(t, out, Format(reparsed))
		})
	}
}

func TestCollapseBlankLines(t *testing.T) {
	got := collapseBlankLines([]string{"", "a", "", "  ", "", "b", "", "c", ""})
	assert.Equal(t, []string{"a", "", "b", "", "c"}, got)
}
