package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdwarehouse/internal/configloader"
	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/config"
	"github.com/yaklabco/mdwarehouse/pkg/extract"
	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
	"github.com/yaklabco/mdwarehouse/pkg/reporter"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

type extractFlags struct {
	format     string
	flavor     string
	linkify    bool
	strict     bool
	timeout    time.Duration
	guard      string
	jobs       int
	output     string
	collectors []string
	ignore     []string
	maxTokens  int
	maxBytes   int
	compact    bool
	keys       []string
}

func newExtractCommand() *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract features from Markdown files",
		Long:  extractLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, flags)
		},
	}

	addExtractFlags(cmd, flags)

	return cmd
}

const extractLongDescription = `Extract features from Markdown files.

By default, extracts every .md and .markdown file under the current directory.
Specify paths to extract specific files or directories.

Exit status is 0 on success, 1 when a collector or file failed, and 2 when a
file was rejected for exceeding a size limit.

Examples:
  mdwarehouse extract                          # Extract the current directory
  mdwarehouse extract README.md --format jsonl # One canonical document per line
  mdwarehouse extract docs/ --format table     # Feature counts per file
  mdwarehouse extract --collectors links,images --linkify
  mdwarehouse extract --strict --timeout 250ms --output features.json`

func runExtract(cmd *cobra.Command, args []string, flags *extractFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg, err := cliConfig(cmd, flags)
	if err != nil {
		return withCode(ExitInvalidUsage, err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return withCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	engineOpts, err := extract.OptionsFromConfig(cfg)
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	engine, err := extract.NewEngine(engineOpts)
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldLinkify, engineOpts.Linkify,
		logging.FieldStrict, engineOpts.Strict,
		logging.FieldTimeout, engineOpts.Timeout,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldCollectors, engine.Collectors(),
	)

	readCap := int64(cfg.Limits.MaxBytes)
	if readCap <= 0 {
		readCap = warehouse.DefaultMaxBytes
	}

	result, err := runner.New(engine).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		MaxBytes:     readCap,
	})
	if err != nil {
		return fmt.Errorf("extract run failed: %w", err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return withCode(ExitInvalidUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	repOpts := reporter.Options{
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		Keys:        flags.keys,
		WorkingDir:  workDir,
	}

	if err := writeReport(ctx, cmd.OutOrStdout(), cfg.Output, repOpts, result); err != nil {
		return withCode(ExitIOError, err)
	}

	if format.MachineReadable() {
		logging.Default().Debug("run summary",
			logging.FieldFilesProcessed, result.Stats.FilesProcessed,
			logging.FieldFilesRejected, result.Stats.FilesRejected,
			logging.FieldErrorsTotal, result.Stats.CollectorErrors)
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// writeReport renders result to stdout, or atomically replaces the output
// file so a failed run never leaves a partial report behind.
func writeReport(ctx context.Context, stdout io.Writer, output string, opts reporter.Options, result *runner.Result) error {
	report := func(w io.Writer) error {
		opts.Writer = w
		rep, err := reporter.New(opts)
		if err != nil {
			return err
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return nil
	}

	if output == "" {
		return report(stdout)
	}

	opts.Color = "never"
	if err := fsutil.WriteAtomicFunc(ctx, output, fsutil.DefaultFileMode, report); err != nil {
		return err
	}
	logging.Default().Debug("report written", logging.FieldOutput, output)
	return nil
}

// cliConfig builds the CLI layer of the configuration. Only flags the user
// set are copied, so unset flags never mask file or environment values.
func cliConfig(cmd *cobra.Command, flags *extractFlags) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return nil, err
		}
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("linkify") {
		cfg.Linkify = &flags.linkify
	}
	if changed("strict") {
		cfg.Strict = &flags.strict
	}
	if changed("timeout") {
		cfg.Timeout = &flags.timeout
	}
	if changed("guard") {
		cfg.Guard = flags.guard
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("collectors") {
		cfg.Only = flags.collectors
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("max-tokens") {
		cfg.Limits.MaxTokens = flags.maxTokens
	}
	if changed("max-bytes") {
		cfg.Limits.MaxBytes = flags.maxBytes
	}

	return cfg, nil
}

func addExtractFlags(cmd *cobra.Command, flags *extractFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "json", "output format: "+reporter.FormatNames())
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.linkify, "linkify", false, "turn bare URLs into links")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail a document on its first collector error")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "time budget of one collector call (0 = none)")
	cmd.Flags().StringVar(&flags.guard, "guard", config.GuardAuto, "timeout guard: auto, preemptive, cooperative")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().StringSliceVar(&flags.collectors, "collectors", nil, "run only the named collectors")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "reject documents with more tokens (0 = default)")
	cmd.Flags().IntVar(&flags.maxBytes, "max-bytes", 0, "reject documents with more bytes (0 = default)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "do not indent JSON output")
	cmd.Flags().StringSliceVar(&flags.keys, "keys", nil, "feature columns of the table format")
}
