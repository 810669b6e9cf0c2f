// Package main is the entry point for the pastefix CLI.
package main

import (
	"os"

	"github.com/jmylchreest/pastefix/cmd/pastefix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
