package warehouse

import (
	"sort"
	"strconv"
	"strings"
)

// Token kinds the section builder reacts to.
const (
	kindHeadingOpen = "heading_open"
	kindInline      = "inline"
	kindText        = "text"
)

// Section is a heading-delimited span of the document.
//
// Sections are flat and non-overlapping: every heading ends the section
// before it, whatever the levels. Parent records the hierarchy separately,
// pointing at the nearest earlier section with a lower level.
type Section struct {
	StartLine    int    `json:"start_line"`
	EndLine      int    `json:"end_line"`
	HeadingIndex int    `json:"heading_index"`
	Level        int    `json:"level"`
	Title        string `json:"title"`
	Parent       int    `json:"parent"`
}

// Sections returns a copy of the section list in StartLine order.
func (w *Warehouse) Sections() []Section {
	out := make([]Section, len(w.sections))
	copy(out, w.sections)
	return out
}

// SectionOf returns the section that owns line: the last section starting
// at or before it. Lines before the first heading belong to no section;
// lines past the last section's end fall to the last section.
func (w *Warehouse) SectionOf(line int) (Section, bool) {
	if line < 0 || len(w.sections) == 0 {
		return Section{}, false
	}

	starts := w.startLines()
	idx := sort.Search(len(starts), func(i int) bool {
		return starts[i] > line
	}) - 1
	if idx < 0 {
		return Section{}, false
	}
	return w.sections[idx], true
}

// startLines returns the sorted start-line view, built on first use.
func (w *Warehouse) startLines() []int {
	w.startsOnce.Do(func() {
		w.sectionStarts = make([]int, len(w.sections))
		for i, sec := range w.sections {
			w.sectionStarts[i] = sec.StartLine
		}
	})
	return w.sectionStarts
}

// sectionBuilder tracks in-progress sections during the index pass.
type sectionBuilder struct {
	sections []Section
	lastLine int

	// levels holds indices into sections of the open hierarchy, lowest level first.
	levels []int

	// titleHeading is the heading_open whose title is still unset, or noIndex.
	titleHeading int
	titleSection int
}

func newSectionBuilder(lastLine int) *sectionBuilder {
	return &sectionBuilder{lastLine: max(lastLine, 0), titleHeading: noIndex, titleSection: noIndex}
}

// headingOpened starts a section at line. Section starts are strictly
// increasing and never pass lastLine: a heading at or before the previous
// start moves to the line after it, and a heading with no line left in the
// buffer opens no section and stays part of the previous one.
func (b *sectionBuilder) headingOpened(idx, level, line int) {
	line = min(max(line, 0), b.lastLine)

	if n := len(b.sections); n > 0 {
		prev := &b.sections[n-1]
		if line <= prev.StartLine {
			line = prev.StartLine + 1
		}
		if line > b.lastLine {
			b.titleHeading = noIndex
			return
		}
		prev.EndLine = line - 1
	}

	for len(b.levels) > 0 && b.sections[b.levels[len(b.levels)-1]].Level >= level {
		b.levels = b.levels[:len(b.levels)-1]
	}

	parent := noIndex
	if len(b.levels) > 0 {
		parent = b.levels[len(b.levels)-1]
	}

	b.sections = append(b.sections, Section{
		StartLine:    line,
		EndLine:      noIndex,
		HeadingIndex: idx,
		Level:        level,
		Parent:       parent,
	})
	b.levels = append(b.levels, len(b.sections)-1)

	b.titleHeading = idx
	b.titleSection = len(b.sections) - 1
}

// offerTitle sets the pending title from the first non-empty textual token
// whose parent is the heading's own open token.
func (b *sectionBuilder) offerTitle(parent int, content string) {
	if b.titleHeading == noIndex || parent != b.titleHeading {
		return
	}
	if content = strings.TrimSpace(content); content == "" {
		return
	}
	b.sections[b.titleSection].Title = content
	b.titleHeading = noIndex
}

func (b *sectionBuilder) headingClosed(open int) {
	if open == b.titleHeading {
		b.titleHeading = noIndex
	}
}

// finish closes the last section at the buffer's last line.
func (b *sectionBuilder) finish() []Section {
	if n := len(b.sections); n > 0 {
		b.sections[n-1].EndLine = b.lastLine
	}
	if b.sections == nil {
		return []Section{}
	}
	return b.sections
}

func isTitleKind(kind string) bool {
	return kind == kindInline || kind == kindText
}

// headingLevel prefers the explicit level and falls back to the h1..h6 tag.
func headingLevel(view *View) int {
	if view.Level > 0 {
		return view.Level
	}
	if len(view.Tag) == 2 && view.Tag[0] == 'h' {
		if lvl, err := strconv.Atoi(view.Tag[1:]); err == nil {
			return lvl
		}
	}
	return 1
}
