// Package output writes CLI reports (run stats, profile listings, version
// info) as JSON, JSON lines or YAML.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONL, FormatYAML}
}

// ParseFormat parses a format name, ignoring case. "yml" is accepted.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Writer handles report serialization.
type Writer interface {
	// Write outputs a single report.
	Write(data any) error

	// WriteAll outputs multiple reports.
	WriteAll(data []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing of JSON.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the JSON indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Write writes a single report in format and flushes it.
func Write(w io.Writer, format Format, data any, opts ...WriterOption) error {
	wr, err := NewWriter(w, format, opts...)
	if err != nil {
		return err
	}
	if err := wr.Write(data); err != nil {
		return err
	}
	return wr.Close()
}

// buffer collects items for formats that emit a single document. One item
// is written as itself, anything else as a list.
type buffer struct {
	w     *bufio.Writer
	items []any
}

func newBuffer(w io.Writer) buffer {
	return buffer{w: bufio.NewWriter(w), items: make([]any, 0)}
}

func (b *buffer) Write(data any) error {
	b.items = append(b.items, data)
	return nil
}

func (b *buffer) WriteAll(data []any) error {
	b.items = append(b.items, data...)
	return nil
}

func (b *buffer) document() any {
	if len(b.items) == 1 {
		return b.items[0]
	}
	return b.items
}
