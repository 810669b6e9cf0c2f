package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/dom"
)

// Unlimited as a MaxBodySize disables the response body limit. A zero
// MaxBodySize means the default limit.
const Unlimited = -1

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent:   defaultUserAgent,
		Timeout:     30 * time.Second,
		MaxBodySize: 10 << 20,
	}
}

const defaultUserAgent = "pastefix/1.0 (+https://github.com/jmylchreest/pastefix)"

// StaticFetcher uses Colly for static HTML fetching.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	def := DefaultStaticConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = def.MaxBodySize
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves a page using Colly and extracts the selected region.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL, "selector", opts.Selector)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)

	c.MaxBodySize = bodyLimit(f.config.MaxBodySize)
	if opts.MaxBodySize != 0 {
		c.MaxBodySize = bodyLimit(opts.MaxBodySize)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
		logger.Debug("static fetch error", "status", result.StatusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}
	if strings.TrimSpace(result.HTML) == "" {
		return result, ErrEmptyBody
	}

	if err := extractRegion(&result, opts.Selector); err != nil {
		return result, err
	}

	logger.Debug("static fetch complete",
		"url", targetURL,
		"title", result.Title,
		"region_size", len(result.Region))
	return result, nil
}

// extractRegion fills Title and Region from the fetched HTML. Matches nested
// inside an earlier match are skipped so no markup is emitted twice.
func extractRegion(content *Content, selector string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return fmt.Errorf("failed to parse content: %w", err)
	}
	root := doc.Nodes[0]

	if title := dom.SelectFirst(root, "title"); title != nil {
		content.Title = cleanText(dom.TextContent(title))
	}

	doc.Find("script, style, noscript, iframe, svg, template").Remove()

	if base, err := url.Parse(content.URL); err == nil {
		absolutize(doc, base)
	}

	if selector == "" {
		region, err := doc.Find("body").First().Html()
		if err != nil {
			return fmt.Errorf("failed to render body: %w", err)
		}
		content.Region = region
		return nil
	}

	matches := dom.Select(root, selector)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}

	var sb strings.Builder
	var last *html.Node
	for _, n := range matches {
		if last != nil && contains(last, n) {
			continue
		}
		if err := html.Render(&sb, n); err != nil {
			return fmt.Errorf("failed to render region: %w", err)
		}
		last = n
	}
	content.Region = sb.String()
	return nil
}

// contains reports whether n is a descendant of ancestor.
func contains(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// absolutize resolves relative link and image URLs against base, so the
// region keeps working once it is pasted somewhere else.
func absolutize(doc *goquery.Document, base *url.URL) {
	resolve := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			ref, _ := s.Attr(attr)
			if ref == "" || strings.HasPrefix(ref, "#") {
				return
			}
			u, err := url.Parse(strings.TrimSpace(ref))
			if err != nil || u.IsAbs() {
				return
			}
			s.SetAttr(attr, base.ResolveReference(u).String())
		}
	}
	doc.Find("a[href]").Each(resolve("href"))
	doc.Find("img[src]").Each(resolve("src"))
}

// bodyLimit maps a MaxBodySize onto colly's, where 0 means no limit.
func bodyLimit(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}

// cleanText normalizes whitespace in text.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
