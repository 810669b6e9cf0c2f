package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes buffered reports as one YAML document.
type YAMLWriter struct {
	buffer
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{buffer: newBuffer(w)}
}

// Flush writes the buffered items.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.document()); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
