package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

func TestSections_TitleAndSubheading(t *testing.T) {
	t.Parallel()

	wh, err := warehouse.New(mdast.NewBuffer("", []byte(scenarioDoc)), scenarioTokens(), warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	require.Len(t, sections, 2)

	assert.Equal(t, warehouse.Section{
		StartLine: 0, EndLine: 3, HeadingIndex: 0, Level: 1, Title: "Title", Parent: -1,
	}, sections[0])

	// The reference example ends "Sub" at line 5. Here the final section runs
	// to the buffer's last line, "More" (line 6), so the trailing paragraph
	// belongs to it.
	assert.Equal(t, warehouse.Section{
		StartLine: 4, EndLine: 6, HeadingIndex: 8, Level: 2, Title: "Sub", Parent: 0,
	}, sections[1])
}

func TestSections_TitleIgnoresFollowingParagraph(t *testing.T) {
	t.Parallel()

	// An empty heading followed by a paragraph: the paragraph's text is not
	// parented by the heading and must not become its title.
	h := open("heading_open", "h2", 0, 1)
	h.Level = 2
	tokens := concat(
		[]mdast.Token{h, leaf("inline", ""), closeTok("heading_close", "h2")},
		paragraph("Trailing paragraph", 2, 3),
	)

	wh, err := warehouse.New(mdast.NewBuffer("", []byte("##\n\nTrailing paragraph\n")), tokens, warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	require.Len(t, sections, 1)
	assert.Empty(t, sections[0].Title)
	assert.Equal(t, 2, sections[0].Level)
}

func TestSections_TitleIsFirstOwnTextOnly(t *testing.T) {
	t.Parallel()

	h := open("heading_open", "h1", 0, 1)
	h.Level = 1
	tokens := []mdast.Token{
		h,
		leaf("inline", "Hello world"),
		leaf("text", "Hello "),
		open("em_open", "em", 0, 1),
		leaf("text", "world"),
		closeTok("em_close", "em"),
		closeTok("heading_close", "h1"),
	}

	wh, err := warehouse.New(mdast.NewBuffer("", []byte("# Hello *world*\n")), tokens, warehouse.Limits{})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", wh.Sections()[0].Title)
}

func TestSections_LevelFromTagAndHierarchy(t *testing.T) {
	t.Parallel()

	doc := "# A\n## B\n### C\n## D\n# E\n"
	tokens := concat(
		heading(1, "A", 0, 1),
		heading(2, "B", 1, 2),
		heading(3, "C", 2, 3),
		heading(2, "D", 3, 4),
		heading(1, "E", 4, 5),
	)
	// Drop the explicit level on C so it is recovered from the tag.
	tokens[8].Level = 0

	wh, err := warehouse.New(mdast.NewBuffer("", []byte(doc)), tokens, warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	require.Len(t, sections, 5)

	levels := []int{1, 2, 3, 2, 1}
	parents := []int{-1, 0, 1, 0, -1}
	ends := []int{0, 1, 2, 3, 4}
	for i, sec := range sections {
		assert.Equal(t, levels[i], sec.Level, "section %d", i)
		assert.Equal(t, parents[i], sec.Parent, "section %d", i)
		assert.Equal(t, ends[i], sec.EndLine, "section %d", i)
	}
}

func TestSections_SetextUnderlineBelongsToItsHeading(t *testing.T) {
	t.Parallel()

	doc := "Intro\n=====\n\ntext\n\nNext\n-----\nbody\n"
	tokens := concat(
		heading(1, "Intro", 0, 2),
		paragraph("text", 3, 4),
		heading(2, "Next", 5, 7),
		paragraph("body", 7, 8),
	)

	wh, err := warehouse.New(mdast.NewBuffer("", []byte(doc)), tokens, warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].StartLine)
	assert.Equal(t, 4, sections[0].EndLine)
	assert.Equal(t, 5, sections[1].StartLine)
	assert.Equal(t, 7, sections[1].EndLine)

	for line, want := range map[int]string{1: "Intro", 4: "Intro", 5: "Next", 6: "Next"} {
		sec, ok := wh.SectionOf(line)
		require.True(t, ok, "line %d", line)
		assert.Equal(t, want, sec.Title, "line %d", line)
	}
}

func TestSections_UnmappedHeadingUsesLastKnownLine(t *testing.T) {
	t.Parallel()

	h := mdast.Token{Kind: "heading_open", Nesting: mdast.Open, Tag: "h2", Level: 2}
	tokens := concat(
		paragraph("before", 3, 4),
		[]mdast.Token{h, leaf("inline", "Late"), closeTok("heading_close", "h2")},
	)

	wh, err := warehouse.New(mdast.NewBuffer("", []byte("a\nb\nc\nbefore\nx\n")), tokens, warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, 3, sections[0].StartLine)
	assert.Equal(t, 4, sections[0].EndLine)
	assert.Equal(t, "Late", sections[0].Title)
}

func TestSections_NoHeadings(t *testing.T) {
	t.Parallel()

	wh, err := warehouse.New(mdast.NewBuffer("", []byte("Body\n")), paragraph("Body", 0, 1), warehouse.Limits{})
	require.NoError(t, err)

	assert.Empty(t, wh.Sections())
	_, ok := wh.SectionOf(0)
	assert.False(t, ok)
}

func TestSectionOf_MatchesLinearScan(t *testing.T) {
	t.Parallel()

	doc := "preamble\n\n# A\ntext\n\n## B\n\n### C\nx\ny\n# D\nlast\n"
	tokens := concat(
		paragraph("preamble", 0, 1),
		heading(1, "A", 2, 3),
		paragraph("text", 3, 4),
		heading(2, "B", 5, 6),
		heading(3, "C", 7, 8),
		paragraph("x y", 8, 10),
		heading(1, "D", 10, 11),
		paragraph("last", 11, 12),
	)

	buf := mdast.NewBuffer("", []byte(doc))
	wh, err := warehouse.New(buf, tokens, warehouse.Limits{})
	require.NoError(t, err)

	sections := wh.Sections()
	linear := func(line int) (warehouse.Section, bool) {
		for _, sec := range sections {
			if sec.StartLine <= line && line <= sec.EndLine {
				return sec, true
			}
		}
		if n := len(sections); n > 0 && line > sections[n-1].EndLine {
			return sections[n-1], true
		}
		return warehouse.Section{}, false
	}

	for line := -1; line <= buf.LastLine()+2; line++ {
		want, wantOK := linear(line)
		got, gotOK := wh.SectionOf(line)
		if line < 0 {
			wantOK = false
			want = warehouse.Section{}
		}
		assert.Equal(t, wantOK, gotOK, "line %d", line)
		assert.Equal(t, want, got, "line %d", line)
	}

	_, ok := wh.SectionOf(0)
	assert.False(t, ok, "before the first section")

	last, ok := wh.SectionOf(buf.LastLine() + 50)
	require.True(t, ok, "after the last section")
	assert.Equal(t, "D", last.Title)
}

func TestSections_StartsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	unmapped := func(level int, title string) []mdast.Token {
		tokens := heading(level, title, 0, 0)
		tokens[0].Map = nil
		tokens[1].Map = nil
		return tokens
	}

	tests := []struct {
		name   string
		doc    string
		tokens []mdast.Token
		want   []warehouse.Section
	}{
		{
			name:   "unmapped heading after mapped heading",
			doc:    "# A\n\nbody\n",
			tokens: concat(heading(1, "A", 0, 1), unmapped(2, "B")),
			want: []warehouse.Section{
				{StartLine: 0, EndLine: 0, HeadingIndex: 0, Level: 1, Title: "A", Parent: -1},
				{StartLine: 1, EndLine: 2, HeadingIndex: 4, Level: 2, Title: "B", Parent: 0},
			},
		},
		{
			name:   "maps past the end of a one-line buffer",
			doc:    "x\n",
			tokens: concat(heading(1, "A", 5, 6), heading(1, "B", 7, 8)),
			want: []warehouse.Section{
				{StartLine: 0, EndLine: 0, HeadingIndex: 0, Level: 1, Title: "A", Parent: -1},
			},
		},
		{
			name:   "two headings on one line",
			doc:    "a\nb\nc\n",
			tokens: concat(heading(1, "A", 1, 2), heading(2, "B", 1, 2)),
			want: []warehouse.Section{
				{StartLine: 1, EndLine: 1, HeadingIndex: 0, Level: 1, Title: "A", Parent: -1},
				{StartLine: 2, EndLine: 2, HeadingIndex: 4, Level: 2, Title: "B", Parent: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := mdast.NewBuffer("", []byte(tt.doc))
			wh, err := warehouse.New(buf, tt.tokens, warehouse.Limits{})
			require.NoError(t, err)

			sections := wh.Sections()
			assert.Equal(t, tt.want, sections)
			for i := 1; i < len(sections); i++ {
				assert.Less(t, sections[i-1].EndLine, sections[i].StartLine)
			}
		})
	}
}
