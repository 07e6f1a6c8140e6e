// Package cli provides the Cobra command structure for mdwarehouse.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdwarehouse/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdwarehouse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdwarehouse",
		Short: "Extract structured features from Markdown in one pass",
		Long: `mdwarehouse tokenizes Markdown documents, indexes the token stream once,
and runs a set of feature collectors over it in a single dispatch pass.

Collectors extract headings, sections, links, images, code blocks, tables
and raw HTML. Results are merged into one deterministic JSON document per
file; a failing collector is reported without affecting the others.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newCollectorsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
