package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/collect/collectors"
	"github.com/yaklabco/mdwarehouse/pkg/config"
	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
)

const defaultConfigFile = ".mdwarehouse.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdwarehouse configuration file",
		Long: `Create a new .mdwarehouse.yml configuration file in the current directory.

Examples:
  mdwarehouse init                      Create minimal .mdwarehouse.yml
  mdwarehouse init --full               Document every collector
  mdwarehouse init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every collector documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	opts := config.TemplateOptions{Full: flags.full}
	for _, info := range collectors.Catalog() {
		opts.Collectors = append(opts.Collectors, config.CollectorInfo{
			Name:        info.Name,
			Description: info.Description,
			Enabled:     info.DefaultEnabled,
			Scoped:      info.Scoped,
		})
	}

	if err := fsutil.WriteAtomic(ctx, absPath, config.GenerateTemplate(opts), fsutil.DefaultFileMode); err != nil {
		return withCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdwarehouse collectors' to see all available collectors")

	return nil
}
