package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/pastefix/pkg/sanitize"
	"github.com/jmylchreest/pastefix/pkg/structure"
	"github.com/jmylchreest/pastefix/pkg/transform"
)

// Stats captures what a pipeline run did.
type Stats struct {
	Profile string `json:"profile"`

	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	Sanitize   sanitize.Stats     `json:"sanitize"`
	Structure  structure.Stats    `json:"structure"`
	Transforms []transform.Report `json:"transforms,omitempty"`

	ParseDuration     time.Duration `json:"parse_duration_ns"`
	SanitizeDuration  time.Duration `json:"sanitize_duration_ns"`
	StructureDuration time.Duration `json:"structure_duration_ns"`
	TransformDuration time.Duration `json:"transform_duration_ns"`
	FormatDuration    time.Duration `json:"format_duration_ns"`
	TotalDuration     time.Duration `json:"total_duration_ns"`
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{}
}

// ReductionPercent returns the size reduction from input to output.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TransformChanges returns the number of changes made by all transforms.
func (s *Stats) TransformChanges() int {
	total := 0
	for _, r := range s.Transforms {
		total += r.Changes
	}
	return total
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Profile: %s\n", s.Profile)
	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())
	fmt.Fprintf(&sb, "Sanitize: %d unwrapped, %d dropped, %d attributes removed, %d urls rejected, %d styles converted\n",
		s.Sanitize.ElementsUnwrapped, s.Sanitize.ElementsDropped, s.Sanitize.AttributesRemoved,
		s.Sanitize.URLsRejected, s.Sanitize.HintsConverted)
	fmt.Fprintf(&sb, "Structure: %d changes\n", s.Structure.Total())

	if len(s.Transforms) > 0 {
		parts := make([]string, 0, len(s.Transforms))
		for _, r := range s.Transforms {
			parts = append(parts, fmt.Sprintf("%s=%d", r.Name, r.Changes))
		}
		fmt.Fprintf(&sb, "Transforms: %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, "Timing: parse=%v, sanitize=%v, structure=%v, transform=%v, format=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.SanitizeDuration.Round(time.Microsecond),
		s.StructureDuration.Round(time.Microsecond),
		s.TransformDuration.Round(time.Microsecond),
		s.FormatDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

// Warning is a non-fatal problem met during a run.
type Warning struct {
	// Phase is "parse", a stage name, or "format"/"serialize".
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the outcome of a run.
type Result struct {
	// Content is the output markup. When the input could not be parsed it
	// is the input, unchanged.
	Content string `json:"content"`

	Stats    *Stats    `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`

	// Error is set when the run fell back to the input text.
	Error error `json:"-"`
}

// AddWarning records a warning.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
