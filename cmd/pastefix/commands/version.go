package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pastefix/internal/output"
	"github.com/jmylchreest/pastefix/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.Write(cmd.OutOrStdout(), output.FormatJSON, version.Get())
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "print as JSON")
}
