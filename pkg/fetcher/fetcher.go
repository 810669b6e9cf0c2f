// Package fetcher retrieves a published page so that a region of it can be
// run through the pipeline, for example to re-normalize an existing article.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string

	// Selector is a CSS selector for the region to extract. Empty selects
	// the page body.
	Selector string

	// MaxBodySize limits the response body in bytes. Zero uses the
	// fetcher's default and Unlimited removes the limit.
	MaxBodySize int
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string // full response body
	Region      string // HTML of the selected region, links made absolute
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

var (
	// ErrNoMatch indicates the selector matched nothing on the page.
	ErrNoMatch = errors.New("selector matched nothing")
	// ErrEmptyBody indicates the server returned no content.
	ErrEmptyBody = errors.New("empty response body")
)
