// Package extract runs the full per-document pipeline: tokenize, index,
// dispatch to collectors and merge their results.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/collect/collectors"
	"github.com/yaklabco/mdwarehouse/pkg/fsutil"
	"github.com/yaklabco/mdwarehouse/pkg/parser/goldmark"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// ErrUnknownCollector is returned for a collector name missing from the catalog.
var ErrUnknownCollector = errors.New("unknown collector")

// Options configures an Engine.
type Options struct {
	// Flavor is the Markdown flavor, "commonmark" or "gfm".
	Flavor string

	// Linkify turns bare URLs into links.
	Linkify bool

	// Strict aborts a document on its first collector failure.
	Strict bool

	// Timeout is the budget of one collector call; zero disables it.
	// OptionsFromConfig resolves an unset budget to config.DefaultTimeout.
	Timeout time.Duration

	// Guard enforces Timeout; nil selects collect.DefaultTimeoutGuard.
	Guard collect.TimeoutGuard

	// Limits caps each document before indexing.
	Limits warehouse.Limits

	// Collectors names the collectors to run, in registration order.
	// Nil selects collectors.DefaultNames.
	Collectors []string

	// CollectorOptions holds per-collector options keyed by name.
	CollectorOptions map[string]collectors.Options
}

// Result is the outcome of one document.
type Result struct {
	// Output is the merged collector output.
	Output *collect.Output

	// Tokens is the length of the token stream.
	Tokens int

	// Sections is the number of heading sections.
	Sections int

	// Delivered counts OnToken calls across all collectors.
	Delivered int

	// Duration is the wall time of the whole pipeline.
	Duration time.Duration
}

// Engine coordinates parsing, indexing and collector dispatch. It is safe
// for concurrent use; every call builds its own warehouse and collectors.
type Engine struct {
	parser *goldmark.Parser
	opts   Options
}

// NewEngine creates an Engine, validating the collector names.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Collectors == nil {
		opts.Collectors = collectors.DefaultNames()
	}
	for _, name := range opts.Collectors {
		if _, ok := collectors.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCollector, name)
		}
	}

	return &Engine{
		parser: goldmark.New(goldmark.Options{Flavor: opts.Flavor, Linkify: opts.Linkify}),
		opts:   opts,
	}, nil
}

// Collectors returns the collector names the engine runs.
func (e *Engine) Collectors() []string {
	return append([]string(nil), e.opts.Collectors...)
}

// Extract runs the pipeline over one document. Oversized documents are
// rejected with a *warehouse.LimitError before tokenizing. Collector
// failures are reported in the output unless the engine is strict.
func (e *Engine) Extract(ctx context.Context, path string, content []byte) (*Result, error) {
	start := time.Now()
	ctx, logger := logging.WithDocument(ctx, path)

	if err := e.opts.Limits.Check(len(content), 0); err != nil {
		return nil, err
	}

	buf, tokens, err := e.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	wh, err := warehouse.New(buf, tokens, e.opts.Limits)
	if err != nil {
		return nil, err
	}

	reg := collect.NewRegistry()
	if err := collectors.RegisterAll(reg, e.opts.Collectors, e.opts.CollectorOptions); err != nil {
		return nil, fmt.Errorf("register collectors: %w", err)
	}

	dispatcher := collect.NewDispatcher(reg, collect.Options{
		Strict:  e.opts.Strict,
		Timeout: e.opts.Timeout,
		Guard:   e.opts.Guard,
	})

	if err := dispatcher.Run(ctx, wh); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	out, err := dispatcher.Finalize(ctx)
	if err != nil {
		return nil, fmt.Errorf("finalize: %w", err)
	}
	out.Source = path
	out.Digest = fsutil.Digest(content)

	result := &Result{
		Output:    out,
		Tokens:    wh.Len(),
		Sections:  len(wh.Sections()),
		Delivered: dispatcher.Delivered(),
		Duration:  time.Since(start),
	}

	logger.Debug("extracted",
		logging.FieldTokens, result.Tokens,
		logging.FieldSections, result.Sections,
		logging.FieldErrorsTotal, len(out.Errors),
		logging.FieldDuration, result.Duration,
	)

	return result, nil
}

// IsRejected reports whether err rejected a document for its size.
func IsRejected(err error) bool {
	return errors.Is(err, warehouse.ErrTokenLimit) ||
		errors.Is(err, warehouse.ErrByteLimit) ||
		errors.Is(err, fsutil.ErrTooLarge)
}
