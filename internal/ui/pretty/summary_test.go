package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdwarehouse/internal/ui/pretty"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "4 files extracted\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "1 file extracted\n",
		},
		{
			name:  "shared",
			stats: runner.Stats{FilesProcessed: 3, FilesShared: 1},
			want:  "3 files extracted (1 shared)\n",
		},
		{
			name: "problems",
			stats: runner.Stats{
				FilesProcessed: 2, FilesRejected: 1, FilesErrored: 1, CollectorErrors: 1,
			},
			want: "2 files extracted, 1 rejected, 1 failed, 1 collector error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesProcessed: 2, Tokens: 90})
	assert.Contains(t, clean, "Summary")
	assert.Contains(t, clean, "Files discovered:  2")
	assert.Contains(t, clean, "Tokens:            90")
	assert.NotContains(t, clean, "Files rejected")
	assert.Contains(t, clean, "Extraction succeeded")

	rejected := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesProcessed: 1, FilesRejected: 1})
	assert.Contains(t, rejected, "Files rejected:    1")
	assert.Contains(t, rejected, "Extraction completed with rejected files")

	failed := styles.FormatSummary(runner.Stats{FilesProcessed: 1, CollectorErrors: 2})
	assert.Contains(t, failed, "Collector errors:  2")
	assert.Contains(t, failed, "Extraction completed with errors")
}
