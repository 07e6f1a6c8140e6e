package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdwarehouse/pkg/config"
)

// envVarPrefix is the prefix for all mdwarehouse environment variables.
const envVarPrefix = "MDWAREHOUSE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":     {field: "flavor", typ: envTypeString, help: "Markdown flavor: commonmark or gfm"},
	"LINKIFY":    {field: "linkify", typ: envTypeBool, help: "Turn bare URLs into links: true or false"},
	"STRICT":     {field: "strict", typ: envTypeBool, help: "Abort on the first collector failure: true or false"},
	"TIMEOUT":    {field: "timeout", typ: envTypeDuration, help: "Per-call collector budget, e.g. 250ms (0 = off)"},
	"GUARD":      {field: "guard", typ: envTypeString, help: "Timeout strategy: auto, preemptive or cooperative"},
	"MAX_TOKENS": {field: "limits.max_tokens", typ: envTypeInt, help: "Token stream cap"},
	"MAX_BYTES":  {field: "limits.max_bytes", typ: envTypeInt, help: "Document size cap in bytes"},
	"MAX_LINE":   {field: "limits.max_line", typ: envTypeInt, help: "Largest line number a token may carry"},
	"JOBS":       {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"FORMAT":     {field: "format", typ: envTypeString, help: "Output format: json, jsonl, text, table or summary"},
	"IGNORE":     {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"COLLECTORS": {field: "only", typ: envTypeSlice, help: "Comma-separated list of collectors to run"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDWAREHOUSE_ (e.g., MDWAREHOUSE_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.Timeout = &d
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "guard":
		cfg.Guard = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "linkify":
		cfg.Linkify = &value
	case "strict":
		cfg.Strict = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "limits.max_tokens":
		cfg.Limits.MaxTokens = value
	case "limits.max_bytes":
		cfg.Limits.MaxBytes = value
	case "limits.max_line":
		cfg.Limits.MaxLine = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "only":
		cfg.Only = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
