// Package main is the entry point for the mdwarehouse CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdwarehouse/internal/cli"
	"github.com/yaklabco/mdwarehouse/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// A silent exit error only carries the result's exit code.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Silent() {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
