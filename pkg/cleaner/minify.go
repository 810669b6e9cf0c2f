package cleaner

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mediaTypeHTML = "text/html"

// MinifyCleaner renders HTML as compactly as possible while keeping every
// end tag and attribute quote, so the output stays readable by editors that
// do not implement the full HTML parsing rules.
type MinifyCleaner struct {
	m *minify.M
}

// NewMinify creates a compact HTML cleaner.
func NewMinify() *MinifyCleaner {
	m := minify.New()
	m.Add(mediaTypeHTML, &html.Minifier{
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	return &MinifyCleaner{m: m}
}

// Clean minifies HTML.
func (c *MinifyCleaner) Clean(content string) (string, error) {
	out, err := c.m.String(mediaTypeHTML, content)
	if err != nil {
		return "", fmt.Errorf("minifying html: %w", err)
	}
	return out, nil
}

// Name returns the cleaner type.
func (c *MinifyCleaner) Name() string {
	return "minify"
}
