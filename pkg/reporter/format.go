package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatJSON    Format = "json"
	FormatJSONL   Format = "jsonl"
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatSummary Format = "summary"
)

//nolint:gochecknoglobals // Read-only lookup table.
var formats = []Format{FormatJSON, FormatJSONL, FormatText, FormatTable, FormatSummary}

// Formats returns every supported format, JSON first.
func Formats() []Format {
	return slices.Clone(formats)
}

// FormatNames returns the supported formats joined for help text.
func FormatNames() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ParseFormat parses a format name. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatJSON, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, FormatNames())
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}

// MachineReadable reports whether f emits JSON rather than styled text.
func (f Format) MachineReadable() bool {
	return f == FormatJSON || f == FormatJSONL
}
