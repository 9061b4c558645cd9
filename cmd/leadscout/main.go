// Package main is the entry point for the leadscout CLI.
package main

import (
	"os"

	"github.com/leadscout/leadscout/cmd/leadscout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
