package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pastefix/pkg/pipeline"
)

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Run every mode over the same input and compare the results",
	Long: `Run every registered mode (built-in and from --profiles) over one input
and print the output size, the number of changes each mode made and the
time it took.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addInputFlags(compareCmd.Flags())
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inOpts, err := inputOptionsFrom(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	text, source, err := readInput(ctx, inOpts, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Input: %s (%s)\n\n", source, humanize.Bytes(uint64(len(text))))
	fmt.Fprintf(w, "%-14s %10s %8s %8s %9s %10s\n", "Mode", "Output", "Change%", "Changes", "Warnings", "Time")
	fmt.Fprintf(w, "%-14s %10s %8s %8s %9s %10s\n", "----", "------", "-------", "-------", "--------", "----")

	for _, name := range profileNames(reg) {
		profile, _ := reg.Lookup(name)
		opts := pipeline.DefaultOptions()
		opts.Profile = profile

		result := pipeline.New(opts).Run(text)
		s := result.Stats
		changes := s.Sanitize.Total() + s.Structure.Total() + s.TransformChanges()

		fmt.Fprintf(w, "%-14s %10s %7.1f%% %8d %9d %10v\n",
			name,
			humanize.Bytes(uint64(s.OutputBytes)),
			-s.ReductionPercent(),
			changes,
			len(result.Warnings),
			s.TotalDuration.Round(time.Microsecond))
	}
	return nil
}
