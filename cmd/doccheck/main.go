// Package main provides the doccheck command.
package main

import (
	"os"

	"github.com/leapstack-labs/doccheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
