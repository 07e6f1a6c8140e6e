// Package config defines core configuration types for mdwarehouse.
// These types are pure data structures with no dependency on the loader.
package config

import (
	"slices"
	"time"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how extraction results are rendered.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatJSONL   OutputFormat = "jsonl"
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatSummary OutputFormat = "summary"
)

// DefaultTimeout is the collector call budget when none is configured.
const DefaultTimeout = 250 * time.Millisecond

// Timeout guard modes.
const (
	GuardAuto        = "auto"
	GuardPreemptive  = "preemptive"
	GuardCooperative = "cooperative"
)

// LimitsConfig holds the resource caps checked before indexing.
// Zero selects the built-in default.
type LimitsConfig struct {
	MaxTokens int `yaml:"max_tokens,omitempty"`
	MaxBytes  int `yaml:"max_bytes,omitempty"`
	MaxLine   int `yaml:"max_line,omitempty"`
}

// CollectorConfig holds per-collector configuration.
type CollectorConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	MaxItems     *int     `yaml:"max_items,omitempty"`
	IgnoreInside []string `yaml:"ignore_inside,omitempty"`
}

// Config is the root configuration structure for mdwarehouse.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Linkify turns bare URLs into links.
	Linkify *bool `yaml:"linkify,omitempty"`

	// Strict aborts a document on its first collector failure.
	Strict *bool `yaml:"strict,omitempty"`

	// Timeout is the budget of one collector call. Nil selects
	// DefaultTimeout; an explicit zero disables the guard.
	Timeout *time.Duration `yaml:"timeout,omitempty"`

	// Guard selects the timeout strategy: auto, preemptive or cooperative.
	Guard string `yaml:"guard,omitempty"`

	// Limits caps document size before indexing.
	Limits LimitsConfig `yaml:"limits,omitempty"`

	// Collectors contains per-collector configuration keyed by name.
	Collectors map[string]CollectorConfig `yaml:"collectors,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Output is the file results are written to; empty means stdout.
	Output string `yaml:"-"`

	// Only restricts extraction to the named collectors.
	Only []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		Guard:      GuardAuto,
		Collectors: make(map[string]CollectorConfig),
		Format:     FormatJSON,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// LinkifyEnabled reports whether bare URLs become links.
func (c *Config) LinkifyEnabled() bool {
	return c.Linkify != nil && *c.Linkify
}

// TimeoutBudget returns the configured collector call budget, or
// DefaultTimeout when unset. Zero means no budget.
func (c *Config) TimeoutBudget() time.Duration {
	if c.Timeout == nil {
		return DefaultTimeout
	}
	return *c.Timeout
}

// StrictEnabled reports whether strict mode is on.
func (c *Config) StrictEnabled() bool {
	return c.Strict != nil && *c.Strict
}

// CollectorEnabled resolves whether the named collector runs, given its
// built-in default. Only overrides everything else when set.
func (c *Config) CollectorEnabled(name string, def bool) bool {
	if len(c.Only) > 0 {
		return slices.Contains(c.Only, name)
	}
	if cc, ok := c.Collectors[name]; ok && cc.Enabled != nil {
		return *cc.Enabled
	}
	return def
}
