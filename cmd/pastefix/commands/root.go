// Package commands implements the CLI commands for pastefix.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/transform"
)

var rootCmd = &cobra.Command{
	Use:   "pastefix",
	Short: "Normalize pasted HTML into clean, publishable markup",
	Long: `Pastefix cleans up HTML pasted from word processors, Google Docs and
web pages, and applies a publishing mode's house style.

Modes: plain, editorial (default), commerce, custom. Individual transforms
can be switched on or off with --set, and extra modes can be defined in a
profiles file.

Examples:
  # Clean a file with the default editorial mode
  pastefix clean draft.html

  # Commerce mode from stdin, links relative to the site root
  pbpaste | pastefix clean -m commerce --set relative_links=true

  # Re-normalize the body of a published article as Markdown
  pastefix clean -u "https://example.com/post" --select article --format markdown

  # Compare every mode on the same input
  pastefix compare draft.html`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.pastefix.yaml)")
	flags.Bool("debug", false, "enable debug logging, including markup after every stage")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON")
	flags.StringP("mode", "m", transform.DefaultMode, "mode: plain, editorial, commerce, custom or a profile from --profiles")
	flags.String("profiles", "", "YAML file with additional profiles")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
	_ = viper.BindPFlag("mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("profiles", flags.Lookup("profiles"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pastefix")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PASTEFIX")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
