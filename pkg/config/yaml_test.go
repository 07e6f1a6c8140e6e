package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdwarehouse/pkg/config"
)

func ptr[T any](v T) *T { return &v }

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies collectors", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Collectors: map[string]config.CollectorConfig{
				"links": {Enabled: ptr(true), MaxItems: ptr(5), IgnoreInside: []string{"blockquote"}},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Collectors, "links")

		*clone.Collectors["links"].MaxItems = 9
		clone.Collectors["links"].IgnoreInside[0] = "table"
		assert.Equal(t, 5, *original.Collectors["links"].MaxItems)
		assert.Equal(t, "blockquote", original.Collectors["links"].IgnoreInside[0])
	})

	t.Run("preserves cli fields", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Flavor:  config.FlavorGFM,
			Linkify: ptr(true),
			Timeout: ptr(time.Second),
			Format:  config.FormatText,
			Jobs:    4,
			Output:  "out.json",
			Only:    []string{"links"},
			Ignore:  []string{"*.bak"},
		}

		clone := original.Clone()
		assert.Equal(t, original, clone)
		assert.NotSame(t, original.Linkify, clone.Linkify)

		clone.Only[0] = "images"
		assert.Equal(t, "links", original.Only[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	var empty *config.Config
	data, err := empty.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	cfg := &config.Config{
		Flavor:  config.FlavorGFM,
		Timeout: ptr(250 * time.Millisecond),
		Format:  config.FormatText,
	}
	data, err = cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "flavor: gfm")
	assert.Contains(t, string(data), "timeout: 250ms")
	assert.NotContains(t, string(data), "format", "cli-only fields are not persisted")

	withHeader, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Equal(t, "# header\n\n"+string(data), string(withHeader))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
flavor: gfm
linkify: true
timeout: 100ms
limits:
  max_tokens: 10
collectors:
  links:
    max_items: 3
    ignore_inside: [blockquote]
  html:
    enabled: true
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.True(t, cfg.LinkifyEnabled())
		assert.Equal(t, 100*time.Millisecond, cfg.TimeoutBudget())
		assert.Equal(t, 10, cfg.Limits.MaxTokens)
		assert.Equal(t, 3, *cfg.Collectors["links"].MaxItems)
		assert.Equal(t, []string{"blockquote"}, cfg.Collectors["links"].IgnoreInside)
		assert.Equal(t, []string{"html", "links", "sections"}, cfg.CollectorNames())
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Collectors)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("rules: {}\n"))
		assert.Error(t, err)
	})
}

func TestCollectorEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.CollectorEnabled("links", true))
	assert.False(t, cfg.CollectorEnabled("html", false))

	cfg.Collectors["links"] = config.CollectorConfig{Enabled: ptr(false)}
	cfg.Collectors["html"] = config.CollectorConfig{Enabled: ptr(true)}
	assert.False(t, cfg.CollectorEnabled("links", true))
	assert.True(t, cfg.CollectorEnabled("html", false))

	cfg.Only = []string{"links"}
	assert.True(t, cfg.CollectorEnabled("links", true))
	assert.False(t, cfg.CollectorEnabled("html", false))
	assert.False(t, cfg.CollectorEnabled("headings", true))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal := config.GenerateTemplate(config.TemplateOptions{})
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(minimal, &parsed))
	assert.Equal(t, "commonmark", parsed["flavor"])

	full := config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Collectors: []config.CollectorInfo{
			{Name: "links", Description: "Links", Enabled: true, Scoped: true},
			{Name: "html", Description: "Raw HTML", Enabled: false, Scoped: true},
			{Name: "sections", Description: "Sections", Enabled: true},
		},
	})
	assert.Equal(t, 2, strings.Count(string(full), "# ignore_inside"), "sections has no ignore_inside")
	cfg, err := config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "links", "sections"}, cfg.CollectorNames())
	assert.False(t, *cfg.Collectors["html"].Enabled)
	assert.True(t, *cfg.Collectors["links"].Enabled)
}
