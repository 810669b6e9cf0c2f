// Package cleaner provides text-to-text cleaners that can be chained around
// the pastefix pipeline: converting Markdown input to HTML, rendering the
// result as Markdown or compact HTML, and a final allow-list pass.
package cleaner

// Cleaner transforms content from one textual form into another.
type Cleaner interface {
	// Clean transforms the input. The output format depends on the
	// implementation (HTML, Markdown, minified HTML).
	Clean(content string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
