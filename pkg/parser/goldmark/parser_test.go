package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/parser/goldmark"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

func parse(t *testing.T, opts goldmark.Options, content string) (*mdast.Buffer, []mdast.Token) {
	t.Helper()
	buf, tokens, err := goldmark.New(opts).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return buf, tokens
}

func kinds(tokens []mdast.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func find(tokens []mdast.Token, kind string) []mdast.Token {
	var out []mdast.Token
	for _, tok := range tokens {
		if tok.Kind == kind {
			out = append(out, tok)
		}
	}
	return out
}

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flavor string
		want   string
	}{
		{goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid", goldmark.FlavorCommonMark},
		{"", goldmark.FlavorCommonMark},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, goldmark.New(goldmark.Options{Flavor: tt.flavor}).Flavor())
	}
	assert.False(t, goldmark.New(goldmark.Options{}).Linkify(), "linkify is off by default")
}

func TestParse_HeadingsAndParagraphs(t *testing.T) {
	t.Parallel()

	buf, tokens := parse(t, goldmark.Options{}, "# Title\n\nBody\n\n## Sub\n\nMore\n")

	assert.Equal(t, []string{
		"heading_open", "inline", "text", "heading_close",
		"paragraph_open", "inline", "text", "paragraph_close",
		"heading_open", "inline", "text", "heading_close",
		"paragraph_open", "inline", "text", "paragraph_close",
	}, kinds(tokens))

	assert.Equal(t, "h1", tokens[0].Tag)
	assert.Equal(t, 1, tokens[0].Level)
	assert.Equal(t, mdast.NewLineRange(0, 1), tokens[0].Map)
	assert.Equal(t, "Title", tokens[1].Content)
	assert.Equal(t, mdast.NewLineRange(2, 3), tokens[4].Map)
	assert.Equal(t, 2, tokens[8].Level)
	assert.Equal(t, mdast.NewLineRange(4, 5), tokens[8].Map)
	assert.Equal(t, mdast.NewLineRange(6, 7), tokens[12].Map)
	assert.Nil(t, tokens[2].Map, "inline children carry no map")

	wh, err := warehouse.New(buf, tokens, warehouse.Limits{})
	require.NoError(t, err)
	assert.Equal(t, []warehouse.Section{
		{StartLine: 0, EndLine: 3, HeadingIndex: 0, Level: 1, Title: "Title", Parent: -1},
		{StartLine: 4, EndLine: 6, HeadingIndex: 8, Level: 2, Title: "Sub", Parent: 0},
	}, wh.Sections())
}

func TestParse_SetextUnderlineBelongsToHeading(t *testing.T) {
	t.Parallel()

	buf, tokens := parse(t, goldmark.Options{}, "Intro\n\nTitle\n=====\nBody\n")

	headings := find(tokens, "heading_open")
	require.Len(t, headings, 1)
	assert.Equal(t, mdast.NewLineRange(2, 4), headings[0].Map)

	wh, err := warehouse.New(buf, tokens, warehouse.Limits{})
	require.NoError(t, err)

	sec, ok := wh.SectionOf(3)
	require.True(t, ok, "underline line is inside the heading's section")
	assert.Equal(t, "Title", sec.Title)
	assert.Equal(t, 2, sec.StartLine)

	_, ok = wh.SectionOf(1)
	assert.False(t, ok)
}

func TestParse_Linkify(t *testing.T) {
	t.Parallel()

	const doc = "See https://example.com today.\n"

	_, tokens := parse(t, goldmark.Options{}, doc)
	assert.Empty(t, find(tokens, "link_open"), "bare URLs stay text by default")

	_, tokens = parse(t, goldmark.Options{Linkify: true}, doc)
	links := find(tokens, "link_open")
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com", links[0].Attr("href"))

	_, tokens = parse(t, goldmark.Options{Flavor: goldmark.FlavorGFM}, doc)
	assert.Empty(t, find(tokens, "link_open"), "GFM does not imply linkify")
}

func TestParse_Autolinks(t *testing.T) {
	t.Parallel()

	_, tokens := parse(t, goldmark.Options{}, "<https://a.example> and <me@example.com>\n")

	links := find(tokens, "link_open")
	require.Len(t, links, 2)
	assert.Equal(t, "https://a.example", links[0].Attr("href"))
	assert.Equal(t, "mailto:me@example.com", links[1].Attr("href"))
}

func TestParse_Inlines(t *testing.T) {
	t.Parallel()

	_, tokens := parse(t, goldmark.Options{}, "[x *y*](/u \"T\") `c` ![alt **b**](i.png) <b>z</b>\n")

	links := find(tokens, "link_open")
	require.Len(t, links, 1)
	assert.Equal(t, "/u", links[0].Attr("href"))
	assert.Equal(t, "T", links[0].Attr("title"))
	assert.Len(t, find(tokens, "link_close"), 1)
	assert.Len(t, find(tokens, "em_open"), 1)

	code := find(tokens, "code_inline")
	require.Len(t, code, 1)
	assert.Equal(t, "c", code[0].Content)

	images := find(tokens, "image")
	require.Len(t, images, 1)
	assert.Equal(t, "i.png", images[0].Attr("src"))
	assert.Equal(t, "alt b", images[0].Content)
	assert.Empty(t, find(tokens, "strong_open"), "image alt is flattened")

	html := find(tokens, "html_inline")
	require.Len(t, html, 2)
	assert.Equal(t, "<b>", html[0].Content)
}

func TestParse_Fence(t *testing.T) {
	t.Parallel()

	_, tokens := parse(t, goldmark.Options{}, "Text\n\n```go\nfmt.Println()\n```\n\n    indented\n")

	fences := find(tokens, "fence")
	require.Len(t, fences, 1)
	assert.Equal(t, "go", fences[0].Attr("info"))
	assert.Equal(t, "fmt.Println()\n", fences[0].Content)
	assert.Equal(t, mdast.NewLineRange(2, 5), fences[0].Map)

	blocks := find(tokens, "code_block")
	require.Len(t, blocks, 1)
	assert.Equal(t, mdast.NewLineRange(6, 7), blocks[0].Map)
}

func TestParse_ThematicBreak(t *testing.T) {
	t.Parallel()

	_, tokens := parse(t, goldmark.Options{}, "a\n\n***\n\nb\n")

	hr := find(tokens, "hr")
	require.Len(t, hr, 1)
	assert.Equal(t, mdast.NewLineRange(2, 3), hr[0].Map)
}

func TestParse_Containers(t *testing.T) {
	t.Parallel()

	_, tokens := parse(t, goldmark.Options{}, "> quote\n> more\n\n- one\n- two\n\n1. first\n")

	quotes := find(tokens, "blockquote_open")
	require.Len(t, quotes, 1)
	assert.Equal(t, mdast.NewLineRange(0, 2), quotes[0].Map)

	lists := find(tokens, "bullet_list_open")
	require.Len(t, lists, 1)
	assert.Equal(t, mdast.NewLineRange(3, 5), lists[0].Map)
	assert.Len(t, find(tokens, "list_item_open"), 3)
	assert.Len(t, find(tokens, "ordered_list_open"), 1)

	depth := 0
	for _, tok := range tokens {
		depth += int(tok.Nesting)
		require.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth, "every open token is closed")
}

func TestParse_Tables(t *testing.T) {
	t.Parallel()

	const doc = "| a | b |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n"

	_, tokens := parse(t, goldmark.Options{}, doc)
	assert.Empty(t, find(tokens, "table_open"), "tables need GFM")

	_, tokens = parse(t, goldmark.Options{Flavor: goldmark.FlavorGFM}, doc)
	tables := find(tokens, "table_open")
	require.Len(t, tables, 1)
	assert.Equal(t, mdast.NewLineRange(0, 4), tables[0].Map)
	assert.Len(t, find(tokens, "thead_open"), 1)
	assert.Len(t, find(tokens, "tbody_open"), 1)
	assert.Len(t, find(tokens, "tr_open"), 3)
	assert.Len(t, find(tokens, "th_open"), 2)
	assert.Len(t, find(tokens, "td_open"), 4)
}

func TestParse_NormalizesBuffer(t *testing.T) {
	t.Parallel()

	buf, tokens := parse(t, goldmark.Options{}, "# Café\r\n\r\nBody\r\n")

	assert.Equal(t, "# Café\n\nBody\n", string(buf.Content))
	assert.Equal(t, 3, buf.LineCount())
	assert.Equal(t, "Café", tokens[1].Content)
	assert.Equal(t, mdast.NewLineRange(2, 3), tokens[4].Map)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := goldmark.New(goldmark.Options{}).Parse(ctx, "x.md", []byte("# x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\n", string(goldmark.Normalize([]byte("a\r\nb\rc\n"))))
	assert.Empty(t, goldmark.Normalize(nil))

	src := []byte("plain\n")
	out := goldmark.Normalize(src)
	out[0] = 'X'
	assert.Equal(t, "plain\n", string(src), "normalize returns a copy")
}
