package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
)

// span is a byte range [start, stop) grown from source segments.
type span struct {
	start, stop int
	ok          bool
}

func (s *span) add(start, stop int) {
	if stop < start {
		return
	}
	if !s.ok {
		s.start, s.stop, s.ok = start, stop, true
		return
	}
	s.start = min(s.start, start)
	s.stop = max(s.stop, stop)
}

func (s *span) merge(o span) {
	if o.ok {
		s.add(o.start, o.stop)
	}
}

// emitter walks a goldmark AST and emits the flat token stream.
// Block tokens carry half-open line maps; inline tokens do not.
type emitter struct {
	src    []byte
	buf    *mdast.Buffer
	tokens []mdast.Token

	// cursor is the first line after the last mapped block.
	cursor int
}

func newEmitter(buf *mdast.Buffer) *emitter {
	return &emitter{
		src:    buf.Content,
		buf:    buf,
		tokens: make([]mdast.Token, 0, len(buf.Content)/8+8),
	}
}

func (e *emitter) emit(tok mdast.Token) int {
	e.tokens = append(e.tokens, tok)
	return len(e.tokens) - 1
}

func (e *emitter) open(kind, tag string, node ast.Node) int {
	return e.emit(mdast.Token{Kind: kind + "_open", Nesting: mdast.Open, Tag: tag, Meta: node})
}

func (e *emitter) close(kind, tag string) int {
	return e.emit(mdast.Token{Kind: kind + "_close", Nesting: mdast.Close, Tag: tag})
}

func (e *emitter) leaf(kind, tag, content string) int {
	return e.emit(mdast.Token{Kind: kind, Nesting: mdast.Leaf, Tag: tag, Content: content})
}

// setMap assigns rng to the given tokens and advances the cursor.
func (e *emitter) setMap(rng *mdast.LineRange, idx ...int) {
	if rng == nil {
		return
	}
	for _, i := range idx {
		r := *rng
		e.tokens[i].Map = &r
	}
	e.cursor = max(e.cursor, rng.End)
}

// lineRange converts a byte span to a half-open line range.
func (e *emitter) lineRange(s span) *mdast.LineRange {
	if !s.ok {
		return nil
	}
	start := e.buf.LineAt(s.start)
	end := e.buf.LineAt(max(s.stop-1, s.start)) + 1
	return mdast.NewLineRange(start, end)
}

// linesSpan returns the span of a block's own source lines.
func (e *emitter) linesSpan(n ast.Node) span {
	var s span
	if n.Type() != ast.TypeBlock {
		return s
	}
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		s.add(seg.Start, seg.Stop)
	}
	return s
}

// linesText joins a block's source lines without the final newline.
func (e *emitter) linesText(n ast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(e.src))
	}
	return b.String()
}

func (e *emitter) children(n ast.Node) span {
	var s span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s.merge(e.block(c))
	}
	return s
}

// block emits the tokens of a block node and returns its source span.
//
//nolint:cyclop,funlen // One case per block node type.
func (e *emitter) block(n ast.Node) span {
	switch node := n.(type) {
	case *ast.Document:
		return e.children(node)

	case *ast.Heading:
		return e.heading(node)

	case *ast.Paragraph, *ast.TextBlock:
		open := e.open("paragraph", "p", node)
		s := e.linesSpan(node)
		inline := e.leaf("inline", "", strings.TrimRight(e.linesText(node), "\n"))
		s.merge(e.inlines(node))
		e.close("paragraph", "p")
		e.setMap(e.lineRange(s), open, inline)
		return s

	case *ast.Blockquote:
		return e.container("blockquote", "blockquote", node)

	case *ast.List:
		if node.IsOrdered() {
			return e.container("ordered_list", "ol", node)
		}
		return e.container("bullet_list", "ul", node)

	case *ast.ListItem:
		return e.container("list_item", "li", node)

	case *ast.FencedCodeBlock:
		return e.fence(node)

	case *ast.CodeBlock:
		idx := e.leaf("code_block", "code", e.linesText(node))
		e.tokens[idx].Meta = node
		s := e.linesSpan(node)
		e.setMap(e.lineRange(s), idx)
		return s

	case *ast.ThematicBreak:
		idx := e.leaf("hr", "hr", "")
		e.tokens[idx].Meta = node
		if line, ok := e.scan(e.cursor, isThematicBreak); ok {
			e.setMap(mdast.NewLineRange(line, line+1), idx)
			return span{start: e.buf.Lines[line].StartOffset, stop: e.buf.Lines[line].EndOffset, ok: true}
		}
		return span{}

	case *ast.HTMLBlock:
		s := e.linesSpan(node)
		content := e.linesText(node)
		if node.HasClosure() {
			seg := node.ClosureLine
			s.add(seg.Start, seg.Stop)
			content += string(seg.Value(e.src))
		}
		idx := e.leaf("html_block", "", content)
		e.tokens[idx].Meta = node
		e.setMap(e.lineRange(s), idx)
		return s

	case *east.Table:
		return e.table(node)

	default:
		if n.Type() == ast.TypeBlock {
			return e.children(n)
		}
		return span{}
	}
}

func (e *emitter) container(kind, tag string, n ast.Node) span {
	open := e.open(kind, tag, n)
	s := e.children(n)
	e.close(kind, tag)
	e.setMap(e.lineRange(s), open)
	return s
}

func (e *emitter) heading(node *ast.Heading) span {
	tag := "h" + strconv.Itoa(node.Level)

	open := e.open("heading", tag, node)
	e.tokens[open].Level = node.Level

	s := e.linesSpan(node)
	inline := e.leaf("inline", "", strings.TrimSpace(e.linesText(node)))
	s.merge(e.inlines(node))

	closeIdx := e.close("heading", tag)
	e.tokens[closeIdx].Level = node.Level

	rng := e.lineRange(s)
	if rng != nil && !isATX(e.buf.LineText(rng.Start)) {
		// Setext: the underline belongs to the heading.
		if under := rng.End; under < e.buf.LineCount() && isSetextUnderline(e.buf.LineText(under)) {
			rng.End = under + 1
			s.stop = max(s.stop, e.buf.Lines[under].EndOffset)
		}
	}
	e.setMap(rng, open, inline)
	return s
}

func (e *emitter) fence(node *ast.FencedCodeBlock) span {
	info := ""
	if node.Info != nil {
		info = strings.TrimSpace(string(node.Info.Segment.Value(e.src)))
	}

	idx := e.leaf("fence", "code", e.linesText(node))
	e.tokens[idx].Meta = node
	if info != "" {
		e.tokens[idx].Attrs = map[string]string{"info": info}
	}

	content := e.linesSpan(node)

	var openLine int
	switch {
	case node.Info != nil:
		openLine = e.buf.LineAt(node.Info.Segment.Start)
	case content.ok:
		openLine = max(e.buf.LineAt(content.start)-1, 0)
	default:
		line, ok := e.scan(e.cursor, isFenceLine)
		if !ok {
			return span{}
		}
		openLine = line
	}

	end := openLine + 1
	if content.ok {
		end = e.buf.LineAt(max(content.stop-1, content.start)) + 1
	}
	if end < e.buf.LineCount() && isFenceLine(e.buf.LineText(end)) {
		end++
	}

	e.setMap(mdast.NewLineRange(openLine, end), idx)

	last := min(end, e.buf.LineCount()) - 1
	if last < openLine {
		return span{}
	}
	return span{start: e.buf.Lines[openLine].StartOffset, stop: e.buf.Lines[last].EndOffset, ok: true}
}

func (e *emitter) table(node *east.Table) span {
	open := e.open("table", "table", node)
	var s span
	bodyOpen := -1

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			head := e.open("thead", "thead", row)
			rs := e.row(row, "th")
			e.close("thead", "thead")
			if rng := e.lineRange(rs); rng != nil {
				e.tokens[head].Map = rng
			}
			s.merge(rs)
		case *east.TableRow:
			if bodyOpen < 0 {
				bodyOpen = e.open("tbody", "tbody", nil)
			}
			s.merge(e.row(row, "td"))
		}
	}

	if bodyOpen >= 0 {
		e.close("tbody", "tbody")
		var bs span
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*east.TableRow); ok {
				bs.merge(e.spanOf(c))
			}
		}
		if rng := e.lineRange(bs); rng != nil {
			e.tokens[bodyOpen].Map = rng
		}
	}

	e.close("table", "table")
	e.setMap(e.lineRange(s), open)
	return s
}

func (e *emitter) row(row ast.Node, cellTag string) span {
	tr := e.open("tr", "tr", row)
	var s span
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cell := e.open(cellTag, cellTag, c)
		cs := e.linesSpan(c)
		inline := e.leaf("inline", "", strings.TrimSpace(e.plainText(c)))
		cs.merge(e.inlines(c))
		e.close(cellTag, cellTag)
		if rng := e.lineRange(cs); rng != nil {
			e.tokens[cell].Map = rng
			r := *rng
			e.tokens[inline].Map = &r
		}
		s.merge(cs)
	}
	e.close("tr", "tr")
	if rng := e.lineRange(s); rng != nil {
		e.tokens[tr].Map = rng
	}
	return s
}

// spanOf computes a node's source span without emitting anything.
func (e *emitter) spanOf(n ast.Node) span {
	s := e.linesSpan(n)
	if t, ok := n.(*ast.Text); ok {
		s.add(t.Segment.Start, t.Segment.Stop)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s.merge(e.spanOf(c))
	}
	return s
}

// scan returns the first line at or after from that matches.
func (e *emitter) scan(from int, match func(string) bool) (int, bool) {
	for line := max(from, 0); line < e.buf.LineCount(); line++ {
		if match(e.buf.LineText(line)) {
			return line, true
		}
	}
	return 0, false
}

// stripPrefix removes indentation and blockquote markers.
func stripPrefix(line string) string {
	return strings.TrimLeft(line, " \t>")
}

func isATX(line string) bool {
	line = stripPrefix(line)
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && (n == len(line) || line[n] == ' ' || line[n] == '\t')
}

func isSetextUnderline(line string) bool {
	line = strings.TrimSpace(stripPrefix(line))
	if line == "" {
		return false
	}
	return strings.Trim(line, "=") == "" || strings.Trim(line, "-") == ""
}

func isThematicBreak(line string) bool {
	line = stripPrefix(line)
	var marker rune
	count := 0
	for _, r := range line {
		switch {
		case r == ' ' || r == '\t':
		case (r == '-' || r == '*' || r == '_') && (marker == 0 || marker == r):
			marker = r
			count++
		default:
			return false
		}
	}
	return count >= 3
}

func isFenceLine(line string) bool {
	line = stripPrefix(line)
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}
