package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pastefix/internal/output"
	"github.com/jmylchreest/pastefix/pkg/transform"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List modes and the transforms they enable",
	Long: `List the built-in modes and any profiles loaded with --profiles.

The default output is a table; --format json, jsonl or yaml prints every
profile with its full transform set.`,
	Args: cobra.NoArgs,
	RunE: runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)
	modesCmd.Flags().String("format", "", "output format: json, jsonl, yaml (default: table)")
}

func runModes(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	formatName, _ := cmd.Flags().GetString("format")
	if formatName != "" {
		format, err := output.ParseFormat(formatName)
		if err != nil {
			return err
		}
		wr, err := output.NewWriter(w, format)
		if err != nil {
			return err
		}
		for _, info := range reg.Describe() {
			if err := wr.Write(info); err != nil {
				return err
			}
		}
		return wr.Close()
	}

	for _, p := range reg.Profiles() {
		kind := "custom"
		if _, err := transform.Builtin(p.Name()); err == nil {
			kind = "builtin"
		}
		enabled := make([]string, 0, len(transform.Order))
		for _, n := range p.EnabledNames() {
			enabled = append(enabled, string(n))
		}
		if len(enabled) == 0 {
			enabled = append(enabled, "-")
		}
		fmt.Fprintf(w, "%-12s %-8s %s\n", p.Name(), kind, strings.Join(enabled, ", "))
	}

	if cmd.Flag("profiles").Value.String() == "" {
		logInfo("\nDefine more modes with --profiles file.yaml")
	}
	return nil
}
