package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding      = 2
	truncatedSuffix   = "+"
	minFileWidth      = 20
	minCountWidth     = 6
	heavySeparator    = "="
	lightSeparator    = "-"
	defaultTermWidth  = 100
	failedPlaceholder = "-"
)

// TableRow is one file in the feature table.
type TableRow struct {
	File   string
	Tokens string
	Counts []string
	Errors string
	Failed bool
}

// TableFormatter lays out per-file feature counts as a styled table with
// one column per feature key.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats runner results. keys selects and orders the feature columns.
func (t *TableFormatter) FormatTable(result *runner.Result, keys []string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, OutcomeToTableRow(file, keys))
	}

	headers := append([]string{"FILE", "TOKENS"}, keys...)
	headers = append(headers, "ERRORS")
	widths := t.columnWidths(headers, rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		cells := append([]string{truncateFilePath(row.File, widths[0]), row.Tokens}, row.Counts...)
		cells = append(cells, row.Errors)
		line := formatCells(cells, widths)
		if row.Failed {
			line = t.styles.TableErrorRow.Render(line)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: N%s = truncated | %s = not applicable", truncatedSuffix, failedPlaceholder)))
	builder.WriteString("\n")

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files extracted", stats.FilesProcessed)}

	if stats.FilesRejected > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d rejected", stats.FilesRejected)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.CollectorErrors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d collector errors", stats.CollectorErrors)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// OutcomeToTableRow converts a file outcome into table cells for keys.
func OutcomeToTableRow(file runner.FileOutcome, keys []string) TableRow {
	row := TableRow{File: file.Path, Counts: make([]string, len(keys))}

	out := file.Output()
	if out == nil {
		row.Failed = true
		row.Tokens = failedPlaceholder
		row.Errors = failedPlaceholder
		for i := range row.Counts {
			row.Counts[i] = failedPlaceholder
		}
		return row
	}

	row.Tokens = strconv.Itoa(file.Result.Tokens)
	row.Errors = strconv.Itoa(len(out.Errors))
	for i, key := range keys {
		count, truncated, ok := out.Count(key)
		switch {
		case !ok:
			row.Counts[i] = failedPlaceholder
		case truncated:
			row.Counts[i] = strconv.Itoa(count) + truncatedSuffix
		default:
			row.Counts[i] = strconv.Itoa(count)
		}
	}
	return row
}

// columnWidths sizes every column to its widest cell, then shrinks the
// file column to fit the terminal.
func (t *TableFormatter) columnWidths(headers []string, rows []TableRow) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(len(h), minCountWidth)
	}
	widths[0] = max(widths[0], minFileWidth)

	for _, row := range rows {
		widths[0] = max(widths[0], len(row.File))
		widths[1] = max(widths[1], len(row.Tokens))
		for i, c := range row.Counts {
			widths[i+2] = max(widths[i+2], len(c))
		}
		last := len(widths) - 1
		widths[last] = max(widths[last], len(row.Errors))
	}

	if total := totalWidth(widths); total > t.termWidth {
		widths[0] = max(minFileWidth, widths[0]-(total-t.termWidth))
	}
	return widths
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func totalWidth(widths []int) int {
	total := 1 + tablePadding*(len(widths)-1)
	for _, w := range widths {
		total += w
	}
	return total
}

// formatCells left-aligns the first cell and right-aligns the rest.
func formatCells(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, cell := range cells {
		if i == 0 {
			fmt.Fprintf(&builder, "%-*s", widths[i], cell)
		} else {
			fmt.Fprintf(&builder, "%*s", widths[i], cell)
		}
		if i < len(cells)-1 {
			builder.WriteString(strings.Repeat(" ", tablePadding))
		}
	}
	return builder.String()
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
