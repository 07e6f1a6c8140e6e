package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files extracted (1 shared), 1 rejected, 2 collector errors".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	head := fmt.Sprintf("%d %s extracted", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))
	if stats.FilesShared > 0 {
		head += s.Dim.Render(fmt.Sprintf(" (%d shared)", stats.FilesShared))
	}

	parts := []string{head}
	if stats.FilesRejected > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d rejected", stats.FilesRejected)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.CollectorErrors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d collector %s",
			stats.CollectorErrors, plural(stats.CollectorErrors, "error", "errors"))))
	}

	if len(parts) == 1 {
		return s.Success.Render(parts[0]) + "\n"
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	line("Files discovered", stats.FilesDiscovered, s.SummaryValue.Render)
	line("Files extracted", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesShared > 0 {
		line("Shared results", stats.FilesShared, s.Dim.Render)
	}
	if stats.FilesRejected > 0 {
		line("Files rejected", stats.FilesRejected, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		line("Files failed", stats.FilesErrored, s.Failure.Render)
	}
	line("Tokens", stats.Tokens, s.SummaryValue.Render)
	if stats.CollectorErrors > 0 {
		line("Collector errors", stats.CollectorErrors, s.Error.Render)
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0 || stats.CollectorErrors > 0:
		builder.WriteString(s.Failure.Render("Extraction completed with errors"))
	case stats.FilesRejected > 0:
		builder.WriteString(s.Warning.Render("Extraction completed with rejected files"))
	default:
		builder.WriteString(s.Success.Render("Extraction succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
