// Package goldmark adapts the goldmark CommonMark parser to the flat
// open/close/leaf token stream the warehouse indexes.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options configures a Parser.
type Options struct {
	// Flavor is "commonmark" or "gfm". Anything else selects CommonMark.
	Flavor string

	// Linkify turns bare URLs ("https://x", "www.x") into links.
	// Autolinks in angle brackets are links regardless.
	Linkify bool
}

// Parser produces token streams using goldmark.
type Parser struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a parser for opts.
func New(opts Options) *Parser {
	opts.Flavor = flavorOrDefault(opts.Flavor)
	return &Parser{
		opts: opts,
		md:   newGoldmarkInstance(opts),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.opts.Flavor
}

// Linkify reports whether bare URLs become links.
func (p *Parser) Linkify() bool {
	return p.opts.Linkify
}

// Parse normalizes content, then tokenizes it. The returned buffer holds
// the normalized bytes the token line maps refer to.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Buffer, []mdast.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse cancelled: %w", err)
	}

	buf := mdast.NewBuffer(path, Normalize(content))

	doc := p.md.Parser().Parse(text.NewReader(buf.Content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse cancelled: %w", err)
	}

	em := newEmitter(buf)
	em.block(doc)

	return buf, em.tokens, nil
}

// Normalize returns a copy of content with CRLF and lone CR line endings
// rewritten to LF and the text in Unicode NFC.
func Normalize(content []byte) []byte {
	out := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	if !norm.NFC.IsNormal(out) {
		out = norm.NFC.Bytes(out)
	}
	return out
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// GFM is assembled from its parts because extension.GFM always enables
// linkify.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(opts Options) goldmark.Markdown {
	var exts []goldmark.Extender

	if opts.Flavor == FlavorGFM {
		exts = append(exts, extension.Table, extension.Strikethrough, extension.TaskList)
	}
	if opts.Linkify {
		exts = append(exts, extension.Linkify)
	}

	return goldmark.New(goldmark.WithExtensions(exts...))
}
