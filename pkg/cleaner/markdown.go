package cleaner

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownInputCleaner converts Markdown to HTML so that pasted Markdown can
// go through the pipeline. Raw HTML inside the Markdown is passed through;
// the sanitizer deals with it.
type MarkdownInputCleaner struct {
	md goldmark.Markdown
}

// NewMarkdownInput creates a Markdown to HTML cleaner with GFM extensions.
func NewMarkdownInput() *MarkdownInputCleaner {
	return &MarkdownInputCleaner{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // tables, strikethrough, autolinks, task lists
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Clean converts Markdown to HTML.
func (c *MarkdownInputCleaner) Clean(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Name returns the cleaner type.
func (c *MarkdownInputCleaner) Name() string {
	return "markdown-input"
}

// MarkdownOutputCleaner converts HTML to Markdown using html-to-markdown.
type MarkdownOutputCleaner struct{}

// NewMarkdownOutput creates an HTML to Markdown cleaner.
func NewMarkdownOutput() *MarkdownOutputCleaner {
	return &MarkdownOutputCleaner{}
}

// Clean converts HTML to Markdown.
func (c *MarkdownOutputCleaner) Clean(content string) (string, error) {
	markdown, err := md.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("converting html: %w", err)
	}
	return cleanWhitespace(markdown), nil
}

// Name returns the cleaner type.
func (c *MarkdownOutputCleaner) Name() string {
	return "markdown-output"
}

// cleanWhitespace keeps at most one blank line in a row. Spacing paragraphs
// convert to lines holding only a non-breaking space, which count as blank.
func cleanWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	blankCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blankCount++
			if blankCount <= 1 {
				result = append(result, "")
			}
		} else {
			blankCount = 0
			result = append(result, strings.TrimRight(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
