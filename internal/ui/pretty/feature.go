package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
)

const keyColumnWidth = 12

// FormatFileHeader formats the heading line of one file's listing.
func (s *Styles) FormatFileHeader(path string, tokens, sections int) string {
	return s.FilePath.Render(path) +
		s.Dim.Render(fmt.Sprintf(" (%d tokens, %d sections)", tokens, sections))
}

// FormatFeature formats one feature as an indented "key  N items" line.
// Features that are not bounded lists are shown by key only.
func (s *Styles) FormatFeature(out *collect.Output, key string) string {
	var builder strings.Builder
	builder.WriteString("  ")
	builder.WriteString(s.Key.Render(fmt.Sprintf("%-*s", keyColumnWidth, key)))

	count, truncated, ok := out.Count(key)
	if !ok {
		return strings.TrimRight(builder.String(), " ")
	}

	builder.WriteString(" ")
	builder.WriteString(s.Count.Render(fmt.Sprintf("%d %s", count, plural(count, "item", "items"))))
	if truncated {
		builder.WriteString(" ")
		builder.WriteString(s.Truncated.Render("(truncated)"))
	}
	return builder.String()
}

// FormatCollectorError formats an isolated collector failure.
func (s *Styles) FormatCollectorError(cerr collect.CollectorError) string {
	where := "finalize"
	if cerr.Token >= 0 {
		where = fmt.Sprintf("token %d", cerr.Token)
	}
	return fmt.Sprintf("  %s %s %s",
		s.Error.Render(string(cerr.Kind)),
		s.Collector.Render(fmt.Sprintf("[%s @ %s]", cerr.Collector, where)),
		cerr.Message,
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
