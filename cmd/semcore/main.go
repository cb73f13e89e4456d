// Package main provides the entry point for the semcore CLI.
package main

import (
	"os"

	"github.com/corpuskit/semcore/cmd/semcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
