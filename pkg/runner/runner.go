package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/extract"
	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
)

// Runner extracts features from many files with one Engine.
type Runner struct {
	Engine *extract.Engine
}

// New creates a Runner.
func New(engine *extract.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and extracts them concurrently.
// Each file gets its own warehouse. Per-file failures are recorded in the
// result; only discovery errors and cancellation are returned as errors.
// Files with identical content are extracted once.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("extracting", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	seen := make([]bool, len(files))
	cache := newDedupe()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.process(gctx, path, opts.MaxBytes, cache)
			seen[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i := range files {
		if seen[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesRejected, result.Stats.FilesRejected,
		logging.FieldErrorsTotal, result.Stats.CollectorErrors,
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, maxBytes int64, cache *dedupe) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, info, err := fsutil.ReadFile(ctx, path, maxBytes)
	if err != nil {
		outcome.Error = err
		outcome.Rejected = extract.IsRejected(err)
		logger.Warn("read failed", logging.FieldError, err)
		return outcome
	}

	res, shared, err := cache.do(info.Digest(), func() (*extract.Result, error) {
		return r.Engine.Extract(ctx, path, content)
	})
	if err != nil {
		outcome.Error = err
		outcome.Rejected = extract.IsRejected(err)
		if outcome.Rejected {
			logger.Warn("document rejected", logging.FieldError, err)
		} else {
			logger.Error("extraction failed", logging.FieldError, err)
		}
		return outcome
	}

	if shared {
		res = rebind(res, path)
	}
	outcome.Result = res
	outcome.Shared = shared

	for _, cerr := range res.Output.Errors {
		logger.Warn("collector failed",
			logging.FieldCollector, cerr.Collector,
			logging.FieldKind, cerr.Kind,
			logging.FieldError, cerr.Message,
		)
	}
	return outcome
}
