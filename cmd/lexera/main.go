// Package main is the entry point for the lexera CLI tool.
package main

import (
	"os"

	"github.com/ludos1978/lexera/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
