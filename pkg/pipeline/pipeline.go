// Package pipeline turns pasted markup into publishable markup:
// parse, sanitize, clean up structure, apply the mode transforms, format.
//
// A stage that fails leaves the document as it found it and the next stage
// carries on, so the worst outcome of a run is that nothing visibly changes.
package pipeline

import (
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/dom"
	"github.com/jmylchreest/pastefix/pkg/format"
	"github.com/jmylchreest/pastefix/pkg/sanitize"
	"github.com/jmylchreest/pastefix/pkg/structure"
	"github.com/jmylchreest/pastefix/pkg/transform"
)

// Output selects how the final tree is rendered.
type Output string

const (
	// OutputPretty renders indented markup with the formatter.
	OutputPretty Output = "pretty"

	// OutputRaw renders the tree with the parser's serializer, no layout.
	OutputRaw Output = "raw"
)

// Options configures a Pipeline.
type Options struct {
	// Profile selects the transforms. The zero Profile resolves to
	// transform.DefaultMode.
	Profile transform.Profile

	// Parser parses input and serializes raw output. A nil Parser means no
	// parser is available: runs return their input unchanged.
	Parser dom.Parser

	// Output is OutputPretty (default) or OutputRaw.
	Output Output

	// Indent is the formatter indent; empty means two spaces.
	Indent string

	// Debug logs the markup after every stage.
	Debug bool
}

// DefaultOptions returns options for the default mode with the HTML parser.
func DefaultOptions() Options {
	p, _ := transform.Builtin(transform.DefaultMode)
	return Options{
		Profile: p,
		Parser:  dom.NewHTMLParser(),
		Output:  OutputPretty,
		Indent:  format.DefaultOptions().Indent,
	}
}

// Pipeline runs the stages for one profile. It holds no per-run state and
// may be shared; each run owns the tree it builds.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Profile.Name() == "" {
		opts.Profile, _ = transform.Builtin(transform.DefaultMode)
	}
	if opts.Output == "" {
		opts.Output = OutputPretty
	}
	return &Pipeline{opts: opts}
}

// Profile returns the profile the pipeline applies.
func (p *Pipeline) Profile() transform.Profile {
	return p.opts.Profile
}

// Name returns the cleaner name for logging.
func (p *Pipeline) Name() string {
	return "pastefix(" + p.opts.Profile.Name() + ")"
}

// Clean runs the pipeline and returns its content. Failures degrade to the
// input text and are never returned as errors.
func (p *Pipeline) Clean(text string) (string, error) {
	return p.Run(text).Content, nil
}

// Run processes text and reports what was done.
func (p *Pipeline) Run(text string) *Result {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.Profile = p.opts.Profile.Name()
	result.Stats.InputBytes = len(text)

	defer func() {
		result.Stats.OutputBytes = len(result.Content)
		result.Stats.TotalDuration = time.Since(start)
	}()

	if p.opts.Parser == nil {
		result.Content = text
		result.Error = dom.ErrParserUnavailable
		result.AddWarning("parse", "parser unavailable, returning original", "")
		logger.Warn("parser unavailable, returning original")
		return result
	}

	parseStart := time.Now()
	root, err := p.parse(text)
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		result.Content = text
		result.Error = err
		result.AddWarning("parse", "parse failed, returning original", err.Error())
		logger.Warn("parse failed, returning original", "error", err)
		return result
	}

	stageStart := time.Now()
	root = p.stage(result, "sanitize", root, func(root *html.Node) *html.Node {
		s := sanitize.New()
		root = s.Sanitize(root)
		result.Stats.Sanitize = s.Stats()
		return root
	})
	result.Stats.SanitizeDuration = time.Since(stageStart)

	stageStart = time.Now()
	root = p.stage(result, "structure", root, func(root *html.Node) *html.Node {
		c := structure.New()
		root = c.Clean(root)
		result.Stats.Structure = c.Stats()
		return root
	})
	result.Stats.StructureDuration = time.Since(stageStart)

	stageStart = time.Now()
	root = p.stage(result, "transform", root, func(root *html.Node) *html.Node {
		root, reports := transform.Apply(root, p.opts.Profile)
		result.Stats.Transforms = reports
		for _, r := range reports {
			if r.Error != "" {
				result.AddWarning("transform", "transform failed, skipped", r.Error)
			}
		}
		return root
	})
	result.Stats.TransformDuration = time.Since(stageStart)

	stageStart = time.Now()
	result.Content = p.render(result, root, text)
	result.Stats.FormatDuration = time.Since(stageStart)

	return result
}

// parse calls the parser, turning a panic into an error.
func (p *Pipeline) parse(text string) (root *html.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	root, err = p.opts.Parser.Parse(text)
	if err == nil && root == nil {
		err = fmt.Errorf("parser returned no tree")
	}
	return root, err
}

// stage runs fn on root behind a boundary: a panic is logged, recorded as a
// warning and answered with a copy of root as it was before fn started.
func (p *Pipeline) stage(result *Result, name string, root *html.Node, fn func(*html.Node) *html.Node) (out *html.Node) {
	backup := dom.Clone(root)
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("stage failed, keeping its input", "stage", name, "panic", r)
			logger.Debug("stage panic", "stage", name, "stack", string(debug.Stack()))
			result.AddWarning(name, "stage failed, keeping its input", fmt.Sprint(r))
			out = backup
		}
		if p.opts.Debug {
			markup, _ := dom.Serialize(out)
			logger.Debug("stage done", "stage", name, "markup", markup)
		}
	}()
	return fn(root)
}

// render produces the output text. If the formatter fails the raw
// serialization is used, and if that fails too the original text.
func (p *Pipeline) render(result *Result, root *html.Node, original string) (out string) {
	if p.opts.Output == OutputPretty {
		s, ok := p.guard(result, "format", func() (string, error) {
			return format.New(format.Options{Indent: p.opts.Indent}).Format(root), nil
		})
		if ok {
			return s
		}
	}
	s, ok := p.guard(result, "serialize", func() (string, error) {
		return p.opts.Parser.Serialize(root)
	})
	if ok {
		return s
	}
	result.Error = fmt.Errorf("rendering output failed")
	return original
}

func (p *Pipeline) guard(result *Result, phase string, fn func() (string, error)) (s string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("output failed", "phase", phase, "panic", r)
			result.AddWarning(phase, "output failed", fmt.Sprint(r))
			s, ok = "", false
		}
	}()
	s, err := fn()
	if err != nil {
		logger.Warn("output failed", "phase", phase, "error", err)
		result.AddWarning(phase, "output failed", err.Error())
		return "", false
	}
	return s, true
}

// Run is the package-level entry point: it resolves mode and overrides to a
// built-in profile and runs the default pipeline. An unknown mode or
// transform name leaves text unchanged.
func Run(text, mode string, overrides map[string]bool) string {
	profile, err := transform.Resolve(mode, overrides)
	if err != nil {
		logger.Warn("cannot resolve profile, returning original", "mode", mode, "error", err)
		return text
	}
	opts := DefaultOptions()
	opts.Profile = profile
	return New(opts).Run(text).Content
}
