package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/collect/collectors"
	"github.com/yaklabco/mdwarehouse/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "collectors.links.max_items").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown collectors).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatJSON:    true,
	config.FormatJSONL:   true,
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatSummary: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownGuards = map[string]bool{
	config.GuardAuto:        true,
	config.GuardPreemptive:  true,
	config.GuardCooperative: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: json, jsonl, text, table, summary", cfg.Format))
	}

	if cfg.Guard != "" && !knownGuards[cfg.Guard] {
		result.addError("guard", cfg.Guard,
			fmt.Sprintf("invalid guard %q; must be one of: auto, preemptive, cooperative", cfg.Guard))
	}

	if cfg.Timeout != nil && *cfg.Timeout < 0 {
		result.addError("timeout", *cfg.Timeout, "timeout must be >= 0 (0 disables it)")
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for _, limit := range []struct {
		field string
		value int
	}{
		{"limits.max_tokens", cfg.Limits.MaxTokens},
		{"limits.max_bytes", cfg.Limits.MaxBytes},
		{"limits.max_line", cfg.Limits.MaxLine},
	} {
		if limit.value < 0 {
			result.addError(limit.field, limit.value, "limit must be >= 0 (0 selects the default)")
		}
	}

	validateCollectors(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

// validateCollectors checks collector names and options.
func validateCollectors(cfg *config.Config, result *ValidationResult) {
	for _, name := range cfg.CollectorNames() {
		cc := cfg.Collectors[name]
		info, ok := collectors.Lookup(name)
		if !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "collectors." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown collector %q; it will be ignored", name),
			})
		}
		if cc.MaxItems != nil && *cc.MaxItems < 0 {
			result.addError("collectors."+name+".max_items", *cc.MaxItems, "max_items must be >= 0 (0 selects the default)")
		}
		if ok && !info.Scoped && len(cc.IgnoreInside) > 0 {
			result.addError("collectors."+name+".ignore_inside", cc.IgnoreInside,
				fmt.Sprintf("collector %q does not support ignore_inside", name))
		}
	}

	for _, name := range cfg.Only {
		if _, ok := collectors.Lookup(name); !ok {
			result.addError("collectors", name, fmt.Sprintf("unknown collector %q", name))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
