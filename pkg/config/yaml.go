package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown fields are errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Collectors == nil {
		cfg.Collectors = make(map[string]CollectorConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Linkify = clonePtr(c.Linkify)
	clone.Strict = clonePtr(c.Strict)
	clone.Timeout = clonePtr(c.Timeout)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Only = slices.Clone(c.Only)

	if c.Collectors != nil {
		clone.Collectors = make(map[string]CollectorConfig, len(c.Collectors))
		for name, cc := range c.Collectors {
			clone.Collectors[name] = cc.Clone()
		}
	}

	return &clone
}

// Clone creates a deep copy of a CollectorConfig.
func (cc CollectorConfig) Clone() CollectorConfig {
	return CollectorConfig{
		Enabled:      clonePtr(cc.Enabled),
		MaxItems:     clonePtr(cc.MaxItems),
		IgnoreInside: slices.Clone(cc.IgnoreInside),
	}
}

// CollectorNames returns the configured collector names, sorted.
func (c *Config) CollectorNames() []string {
	return slices.Sorted(maps.Keys(c.Collectors))
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
