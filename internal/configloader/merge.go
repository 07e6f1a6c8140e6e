package configloader

import (
	"maps"

	"github.com/yaklabco/mdwarehouse/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Guard != "" {
		result.Guard = override.Guard
	}
	if override.Timeout != nil {
		result.Timeout = override.Timeout
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	if override.Linkify != nil {
		result.Linkify = override.Linkify
	}
	if override.Strict != nil {
		result.Strict = override.Strict
	}

	if override.Limits.MaxTokens != 0 {
		result.Limits.MaxTokens = override.Limits.MaxTokens
	}
	if override.Limits.MaxBytes != 0 {
		result.Limits.MaxBytes = override.Limits.MaxBytes
	}
	if override.Limits.MaxLine != 0 {
		result.Limits.MaxLine = override.Limits.MaxLine
	}

	result.Collectors = mergeCollectors(base.Collectors, override.Collectors)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Only != nil {
		result.Only = override.Only
	}

	return &result
}

// mergeCollectors performs deep merge of collector configurations.
func mergeCollectors(base, override map[string]config.CollectorConfig) map[string]config.CollectorConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.CollectorConfig, len(base)+len(override))
	maps.Copy(result, base)

	for name, val := range override {
		if existing, ok := result[name]; ok {
			result[name] = mergeCollectorConfig(existing, val)
		} else {
			result[name] = val
		}
	}

	return result
}

// mergeCollectorConfig merges individual collector configurations.
func mergeCollectorConfig(base, override config.CollectorConfig) config.CollectorConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.MaxItems != nil {
		result.MaxItems = override.MaxItems
	}
	if override.IgnoreInside != nil {
		result.IgnoreInside = override.IgnoreInside
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
