package cleaner

import (
	"errors"
	"strings"
	"testing"
)

// --- NoopCleaner Tests ---

func TestNoopCleaner_Clean(t *testing.T) {
	c := NewNoop()

	tests := []struct {
		name  string
		input string
	}{
		{"empty_string", ""},
		{"plain_text", "Hello, World!"},
		{"html_content", "<h2>Title</h2><p>body</p>"},
		{"whitespace", "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Errorf("Clean() error = %v, want nil", err)
			}
			if got != tt.input {
				t.Errorf("Clean() = %q, want %q", got, tt.input)
			}
		})
	}
}

// --- ChainCleaner Tests ---

func TestChainCleaner_Empty(t *testing.T) {
	c := NewChain()

	input := "unchanged content"
	got, err := c.Clean(input)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != input {
		t.Errorf("Clean() = %q, want %q", got, input)
	}
}

func TestChainCleaner_Order(t *testing.T) {
	c := NewChain(NewMarkdownInput(), NewMinify())

	got, err := c.Clean("# Title\n\nSome *text*.\n")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "<h1>Title</h1><p>Some <em>text</em>.</p>" {
		t.Errorf("Clean() = %q", got)
	}
}

// errorCleaner is a test cleaner that always returns an error
type errorCleaner struct{}

func (c *errorCleaner) Clean(string) (string, error) {
	return "", errors.New("test error")
}

func (c *errorCleaner) Name() string {
	return "error"
}

func TestChainCleaner_ErrorPropagation(t *testing.T) {
	c := NewChain(NewNoop(), &errorCleaner{}, NewMarkdownOutput())

	_, err := c.Clean("test")
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if err.Error() != "error: test error" {
		t.Errorf("unexpected error %q", err)
	}
}

func TestChainCleaner_Name(t *testing.T) {
	tests := []struct {
		name     string
		cleaners []Cleaner
		want     string
	}{
		{"empty", []Cleaner{}, "chain()"},
		{"single", []Cleaner{NewNoop()}, "chain(noop)"},
		{"pipeline", []Cleaner{NewMarkdownInput(), NewPolicy(), NewMarkdownOutput()}, "chain(markdown-input->policy->markdown-output)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(tt.cleaners...)
			if got := c.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Markdown Tests ---

func TestMarkdownInput_Clean(t *testing.T) {
	c := NewMarkdownInput()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"heading_and_emphasis", "## Key Takeaways\n\n- **A:** text\n", []string{"<h2>Key Takeaways</h2>", "<li><strong>A:</strong> text</li>"}},
		{"gfm_table", "| a | b |\n|---|---|\n| 1 | 2 |\n", []string{"<table>", "<td>1</td>"}},
		{"gfm_strikethrough", "~~gone~~", []string{"<del>gone</del>"}},
		{"raw_html_passes", `<span style="font-weight:bold">x</span>`, []string{`<span style="font-weight:bold">x</span>`}},
		{"link", "[post](https://example.com/p)", []string{`<a href="https://example.com/p">post</a>`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Clean() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestMarkdownOutput_Clean(t *testing.T) {
	c := NewMarkdownOutput()

	got, err := c.Clean("<h2><strong>Title</strong></h2>\n<p> </p>\n<p> </p>\n<p>A paragraph.</p>")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if !strings.Contains(got, "## **Title**") {
		t.Errorf("expected markdown heading, got %q", got)
	}
	if !strings.Contains(got, "A paragraph.") {
		t.Errorf("expected paragraph text, got %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("expected blank lines collapsed, got %q", got)
	}
}

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\n\n\n\nb", "a\n\nb"},
		{"\n\na  \n \n\nb\n", "a\n\nb"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanWhitespace(tt.input); got != tt.want {
			t.Errorf("cleanWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// --- Minify Tests ---

func TestMinify_Clean(t *testing.T) {
	c := NewMinify()

	got, err := c.Clean("<ul>\n  <li><strong>A:</strong> text</li>\n</ul>\n<p><a href=\"/x\" target=\"_blank\">x</a></p>")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("expected single line, got %q", got)
	}
	for _, want := range []string{"<li><strong>A:</strong> text</li>", "</ul>", `target="_blank"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Clean() = %q, missing %q", got, want)
		}
	}
}

// --- Policy Tests ---

func TestPolicy_Clean(t *testing.T) {
	c := NewPolicy()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:    "hostile_markup",
			input:   `<p onclick="x()">a <script>bad()</script><a href="javascript:alert(1)">l</a></p>`,
			want:    []string{"<p>a "},
			notWant: []string{"script", "onclick", "javascript:"},
		},
		{
			name:  "pipeline_output_unchanged",
			input: "<h2><strong>Title</strong></h2>\n<p><a href=\"https://example.com/\" target=\"_blank\" rel=\"noopener noreferrer\">x</a></p>",
			want:  []string{"<h2><strong>Title</strong></h2>\n<p><a href=\"https://example.com/\" target=\"_blank\" rel=\"noopener noreferrer\">x</a></p>"},
		},
		{
			name:    "disallowed_attributes",
			input:   `<p style="color:red" class="x">t</p><img src="/i.png" width="3">`,
			want:    []string{"<p>t</p>", `<img src="/i.png"`},
			notWant: []string{"style", "class", "width"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Clean() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(got, bad) {
					t.Errorf("Clean() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}
