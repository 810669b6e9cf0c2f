package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/internal/output"
	"github.com/jmylchreest/pastefix/pkg/cleaner"
	"github.com/jmylchreest/pastefix/pkg/pipeline"
)

// Output formats for the clean command.
const (
	formatPretty   = "pretty"
	formatRaw      = "raw"
	formatCompact  = "compact"
	formatMarkdown = "markdown"
)

// statsReport is the --stats --json document.
type statsReport struct {
	Source   string             `json:"source" yaml:"source"`
	Stats    *pipeline.Stats    `json:"stats" yaml:"stats"`
	Warnings []pipeline.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Fallback bool               `json:"fallback" yaml:"fallback"`
}

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Clean pasted HTML",
	Long: `Clean HTML from a file, stdin or a URL and write the result.

Transforms are switched with --set name=true|false; a bare --set name
enables it. Available transforms, in the order they run:
  ` + strings.Join(transformNames(), ", ") + `

Output formats:
  pretty    indented HTML (default)
  raw       HTML without layout
  compact   minified HTML
  markdown  Markdown

Examples:
  pastefix clean draft.html -o clean.html
  pastefix clean --from markdown notes.md --format pretty
  pastefix clean draft.html --set sources=false --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	addInputFlags(flags)

	flags.StringArray("set", nil, "enable or disable a transform: name=true|false (repeatable)")
	flags.String("format", formatPretty, "output format: pretty, raw, compact, markdown")
	flags.String("indent", "  ", "indent for pretty output")
	flags.Bool("strict", false, "run a second allow-list pass over the output")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "print run statistics to stderr")
	flags.Bool("json", false, "print statistics as JSON")

	_ = viper.BindPFlag("format", flags.Lookup("format"))
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()

	inOpts, err := inputOptionsFrom(cmd)
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	sets, _ := flags.GetStringArray("set")
	profile, err := resolveProfile(reg, sets)
	if err != nil {
		return err
	}

	format := viper.GetString("format")
	strict, _ := flags.GetBool("strict")
	post, err := outputCleaner(format, strict)
	if err != nil {
		return err
	}

	text, source, err := readInput(ctx, inOpts, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := pipeline.DefaultOptions()
	opts.Profile = profile
	opts.Debug = viper.GetBool("debug")
	opts.Indent, _ = flags.GetString("indent")
	if format != formatPretty {
		opts.Output = pipeline.OutputRaw
	}

	result := pipeline.New(opts).Run(text)
	for _, w := range result.Warnings {
		logger.Warn("pipeline warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
	}
	if result.Error != nil {
		logger.Warn("input returned unchanged", "source", source, "error", result.Error)
	}

	content, err := post.Clean(result.Content)
	if err != nil {
		return err
	}

	outPath, _ := flags.GetString("output")
	if err := writeOutput(cmd.OutOrStdout(), outPath, content); err != nil {
		return err
	}
	if outPath != "" {
		logInfo("Wrote %s to %s", humanize.Bytes(uint64(len(content))), outPath)
	}

	if showStats, _ := flags.GetBool("stats"); showStats {
		asJSON, _ := flags.GetBool("json")
		return writeStats(cmd.ErrOrStderr(), source, result, asJSON)
	}
	return nil
}

// outputCleaner returns the text cleaners that turn pipeline output into
// the requested format.
func outputCleaner(format string, strict bool) (cleaner.Cleaner, error) {
	var chain []cleaner.Cleaner
	if strict {
		chain = append(chain, cleaner.NewPolicy())
	}

	switch format {
	case formatPretty, formatRaw:
	case formatCompact:
		chain = append(chain, cleaner.NewMinify())
	case formatMarkdown:
		chain = append(chain, cleaner.NewMarkdownOutput())
	default:
		return nil, fmt.Errorf("unsupported --format %q: use pretty, raw, compact or markdown", format)
	}

	if len(chain) == 0 {
		return cleaner.NewNoop(), nil
	}
	return cleaner.NewChain(chain...), nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func writeStats(w io.Writer, source string, result *pipeline.Result, asJSON bool) error {
	if asJSON {
		return output.Write(w, output.FormatJSON, statsReport{
			Source:   source,
			Stats:    result.Stats,
			Warnings: result.Warnings,
			Fallback: result.Error != nil,
		})
	}

	s := result.Stats
	fmt.Fprintf(w, "%s: %s -> %s with %s\n", source,
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.Profile)
	fmt.Fprint(w, s.String())
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}
	return nil
}
