// Package main is the spacesync command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/spacesync/internal/cli"
	"github.com/roach88/spacesync/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacesync: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "spacesync: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
