package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/pastefix/pkg/dom"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "break inside paragraph between words becomes a space",
			in:   `<p>one<br>two</p>`,
			want: `<p>one two</p>`,
		},
		{
			name: "break at paragraph end is removed",
			in:   `<p>one <br></p>`,
			want: `<p>one </p>`,
		},
		{
			name: "breaks trailing a block are removed",
			in:   `<p>a</p><br><br><p>b</p>`,
			want: `<p>a</p><p>b</p>`,
		},
		{
			name: "break inside inline outside a list is kept",
			in:   `<p><strong>a<br>b</strong></p>`,
			want: `<p><strong>a<br/>b</strong></p>`,
		},
		{
			name: "break deep inside a list item is removed",
			in:   `<ul><li><strong>a<br></strong></li></ul>`,
			want: `<ul><li><strong>a</strong></li></ul>`,
		},
		{
			name: "paragraph in list item is unwrapped and its break dropped",
			in:   `<ul><li><p>a<br></p></li></ul>`,
			want: `<ul><li>a</li></ul>`,
		},
		{
			name: "consecutive paragraphs in list item keep words apart",
			in:   `<ol><li><p>a</p><p>b</p></li></ol>`,
			want: `<ol><li>a b</li></ol>`,
		},
		{
			name: "paragraph nested below list item is unwrapped",
			in:   `<ul><li><blockquote><p>q</p></blockquote></li></ul>`,
			want: `<ul><li><blockquote>q</blockquote></li></ul>`,
		},
		{
			name: "strong around em is reordered",
			in:   `<ul><li><strong><em>A:</em> rest</strong></li></ul>`,
			want: `<ul><li><em><strong>A:</strong> rest</em></li></ul>`,
		},
		{
			name: "em around strong is canonical",
			in:   `<ul><li><em><strong>A: </strong>text</em></li></ul>`,
			want: `<ul><li><em><strong>A: </strong>text</em></li></ul>`,
		},
		{
			name: "strong around em outside a list item is untouched",
			in:   `<p><strong><em>x</em></strong></p>`,
			want: `<p><strong><em>x</em></strong></p>`,
		},
		{
			name: "adjacent em siblings merge",
			in:   `<ul><li><em>a</em> <em>b</em><em>c</em></li></ul>`,
			want: `<ul><li><em>a bc</em></li></ul>`,
		},
		{
			name: "unwrapping exposes adjacent em to merge",
			in:   `<ul><li><p><em>a</em></p><p><em>b</em></p></li></ul>`,
			want: `<ul><li><em>a b</em></li></ul>`,
		},
		{
			name: "reordered strong merges with following em",
			in:   `<ul><li><strong><em>a</em></strong><em>b</em></li></ul>`,
			want: `<ul><li><em><strong>a</strong>b</em></li></ul>`,
		},
		{
			name: "anchor text is trimmed",
			in:   `<p><a href="/x"> link </a></p>`,
			want: `<p><a href="/x">link</a></p>`,
		},
		{
			name: "anchor trim keeps word separation",
			in:   `<p>see<a href="/x"> link </a>now</p>`,
			want: `<p>see <a href="/x">link</a> now</p>`,
		},
		{
			name: "whitespace-only anchor text is removed",
			in:   `<p><a href="/x"> </a></p>`,
			want: `<p><a href="/x"></a></p>`,
		},
		{
			name: "nested anchor text is trimmed",
			in:   `<p><a href="/x"><em> a</em> <strong>b </strong></a></p>`,
			want: `<p><a href="/x"><em>a</em> <strong>b</strong></a></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := dom.MustParse(tt.in)
			got := dom.MustSerialize(Clean(root))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		`<ul><li><p>a<br>b</p><p><strong><em>c</em> d</strong></p></li></ul><p>x</p><br>`,
		`<p>see<a href="/x"> link </a>now</p>`,
		`<ol><li><em>a</em> <em>b</em></li><li><strong> <em>z</em></strong></li></ol>`,
	}
	for _, in := range inputs {
		once := dom.MustSerialize(Clean(dom.MustParse(in)))
		twice := dom.MustSerialize(Clean(dom.MustParse(once)))
		assert.Equal(t, once, twice, "input: %s", in)
	}
}

func TestClean_Stats(t *testing.T) {
	c := New()
	c.Clean(dom.MustParse(`<ul><li><p>a<br>b</p><strong><em>c</em></strong><em>d</em></li></ul><p><a href="/"> x</a></p>`))

	s := c.Stats()
	assert.Equal(t, 1, s.BreaksRemoved)
	assert.Equal(t, 1, s.ParagraphsUnwrapped)
	assert.Equal(t, 1, s.EmphasisReordered)
	assert.Equal(t, 1, s.EmphasisMerged)
	assert.Equal(t, 1, s.AnchorsTrimmed)
	assert.Equal(t, 5, s.Total())
}
