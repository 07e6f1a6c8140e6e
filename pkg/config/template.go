package config

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every collector. If false, generates a minimal template.
	Full bool

	// Collectors describes the available collectors for the full template.
	Collectors []CollectorInfo
}

// CollectorInfo contains collector metadata for template generation.
// It decouples this package from the collector catalog.
type CollectorInfo struct {
	Name        string
	Description string
	Enabled     bool

	// Scoped collectors accept ignore_inside.
	Scoped bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Turn bare URLs (https://example.com, www.example.com) into links
# linkify: false

# Abort a document on its first collector failure
# strict: false

# Budget of a single collector call; 0 disables the guard
# timeout: 250ms

# Timeout strategy: auto, preemptive or cooperative
# guard: auto

# Resource caps checked before indexing (0 = built-in default)
# limits:
#   max_tokens: 500000
#   max_bytes: 10485760
#   max_line: 1000000

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Collector-specific configuration
# collectors:
#   links:
#     max_items: 500
#     ignore_inside: [blockquote]
#   html:
#     enabled: true
`)
		return buf.Bytes()
	}

	infos := slices.Clone(opts.Collectors)
	slices.SortFunc(infos, func(a, b CollectorInfo) int { return cmp.Compare(a.Name, b.Name) })

	buf.WriteString("\n# Collector-specific configuration\ncollectors:\n")
	for _, info := range infos {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(info.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", info.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", info.Enabled)
		buf.WriteString("    # max_items: 1000\n")
		if info.Scoped {
			buf.WriteString("    # ignore_inside: []\n")
		}
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdwarehouse configuration
# See: https://github.com/yaklabco/mdwarehouse`
}
