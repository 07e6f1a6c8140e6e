// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor  = "flavor"
	FieldLinkify = "linkify"
	FieldStrict  = "strict"
	FieldTimeout = "timeout"
	FieldJobs    = "jobs"
	FieldConfig  = "config"

	// Warehouse fields.
	FieldTokens   = "tokens"
	FieldBytes    = "bytes"
	FieldSections = "sections"
	FieldLimit    = "limit"

	// Dispatch fields.
	FieldCollector  = "collector"
	FieldCollectors = "collectors"
	FieldToken      = "token"
	FieldKind       = "kind"
	FieldKey        = "key"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesRejected   = "files_rejected"
	FieldErrorsTotal     = "errors_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
