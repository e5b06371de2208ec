// Package main is the entry point for the huntarr CLI and dashboard.
package main

import (
	"os"

	"github.com/jharder01/Huntarr.io/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
