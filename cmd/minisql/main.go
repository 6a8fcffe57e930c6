// Package main provides the minisql command.
package main

import (
	"os"

	"github.com/leapstack-labs/minisql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
