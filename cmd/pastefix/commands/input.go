package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/cleaner"
	"github.com/jmylchreest/pastefix/pkg/fetcher"
)

// ErrEmptyInput is returned when there is nothing to clean.
var ErrEmptyInput = errors.New("empty input")

// inputOptions says where input comes from and how to read it.
type inputOptions struct {
	url      string
	selector string
	from     string
	maxInput int
	timeout  time.Duration
}

func addInputFlags(flags *pflag.FlagSet) {
	flags.StringP("url", "u", "", "fetch input from a URL instead of a file or stdin")
	flags.String("select", "", "CSS selector for the region of the fetched page to clean (default: body)")
	flags.String("from", "html", "input format: html, markdown")
	flags.String("max-input", "5MB", "max input size (e.g., 500KB, 5MB, 0=unlimited)")
	flags.Duration("timeout", 30*time.Second, "fetch timeout")
}

func inputOptionsFrom(cmd *cobra.Command) (inputOptions, error) {
	flags := cmd.Flags()
	opts := inputOptions{}
	opts.url, _ = flags.GetString("url")
	opts.selector, _ = flags.GetString("select")
	opts.from, _ = flags.GetString("from")
	opts.timeout, _ = flags.GetDuration("timeout")

	maxInput, _ := flags.GetString("max-input")
	size, err := parseSize(maxInput)
	if err != nil {
		return opts, fmt.Errorf("invalid --max-input: %w", err)
	}
	opts.maxInput = size

	switch opts.from {
	case "html", "markdown":
	default:
		return opts, fmt.Errorf("unsupported --from %q: use html or markdown", opts.from)
	}
	if opts.selector != "" && opts.url == "" {
		return opts, errors.New("--select requires --url")
	}
	return opts, nil
}

// parseSize parses a humanized size. Empty and "0" mean unlimited.
func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// fetchLimit turns --max-input into a fetcher body limit. Unlimited input
// stays unlimited instead of falling back to the fetcher default.
func fetchLimit(maxInput int) int {
	if maxInput <= 0 {
		return fetcher.Unlimited
	}
	return maxInput
}

// readInput returns the text to clean and a label for its source. With no
// URL and no file argument (or "-") it reads stdin.
func readInput(ctx context.Context, opts inputOptions, args []string, stdin io.Reader) (string, string, error) {
	var text, source string

	switch {
	case opts.url != "":
		f := fetcher.NewStatic(fetcher.StaticConfig{Timeout: opts.timeout, MaxBodySize: fetchLimit(opts.maxInput)})
		defer func() { _ = f.Close() }()

		content, err := f.Fetch(ctx, opts.url, fetcher.Options{Selector: opts.selector})
		if err != nil {
			return "", opts.url, err
		}
		text, source = content.Region, opts.url

	case len(args) > 0 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", args[0], fmt.Errorf("reading input: %w", err)
		}
		text, source = string(data), args[0]

	default:
		r := stdin
		if opts.maxInput > 0 {
			r = io.LimitReader(stdin, int64(opts.maxInput)+1)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", "stdin", fmt.Errorf("reading stdin: %w", err)
		}
		text, source = string(data), "stdin"
	}

	if opts.maxInput > 0 && len(text) > opts.maxInput {
		return "", source, fmt.Errorf("input from %s exceeds --max-input of %s", source, humanize.Bytes(uint64(opts.maxInput)))
	}
	if strings.TrimSpace(text) == "" {
		return "", source, fmt.Errorf("%w from %s", ErrEmptyInput, source)
	}

	if opts.from == "markdown" {
		html, err := cleaner.NewMarkdownInput().Clean(text)
		if err != nil {
			return "", source, err
		}
		text = html
	}

	logger.Debug("input read", "source", source, "bytes", len(text), "from", opts.from)
	return text, source, nil
}
