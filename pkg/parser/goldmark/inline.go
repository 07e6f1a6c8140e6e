package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// inlines emits the inline children of n and returns their source span.
func (e *emitter) inlines(n ast.Node) span {
	var s span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s.merge(e.inline(c))
	}
	return s
}

//nolint:cyclop // One case per inline node type.
func (e *emitter) inline(n ast.Node) span {
	var s span

	switch node := n.(type) {
	case *ast.Text:
		s.add(node.Segment.Start, node.Segment.Stop)
		if value := node.Segment.Value(e.src); len(value) > 0 {
			e.leaf("text", "", string(value))
		}
		switch {
		case node.HardLineBreak():
			e.leaf("hardbreak", "br", "")
		case node.SoftLineBreak():
			e.leaf("softbreak", "br", "")
		}

	case *ast.String:
		if len(node.Value) > 0 {
			e.leaf("text", "", string(node.Value))
		}

	case *ast.CodeSpan:
		s = e.spanOf(node)
		e.leaf("code_inline", "code", e.plainText(node))

	case *ast.Emphasis:
		kind, tag := "em", "em"
		if node.Level == 2 {
			kind, tag = "strong", "strong"
		}
		e.open(kind, tag, nil)
		s = e.inlines(node)
		e.close(kind, tag)

	case *east.Strikethrough:
		e.open("s", "s", nil)
		s = e.inlines(node)
		e.close("s", "s")

	case *ast.Link:
		idx := e.open("link", "a", nil)
		e.tokens[idx].Attrs = linkAttrs("href", node.Destination, node.Title)
		s = e.inlines(node)
		e.close("link", "a")

	case *ast.AutoLink:
		url := node.URL(e.src)
		if node.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(url, []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		idx := e.open("link", "a", nil)
		e.tokens[idx].Attrs = linkAttrs("href", url, nil)
		e.leaf("text", "", string(node.Label(e.src)))
		e.close("link", "a")

	case *ast.Image:
		s = e.spanOf(node)
		idx := e.leaf("image", "img", e.plainText(node))
		e.tokens[idx].Attrs = linkAttrs("src", node.Destination, node.Title)

	case *ast.RawHTML:
		var b bytes.Buffer
		for i := range node.Segments.Len() {
			seg := node.Segments.At(i)
			s.add(seg.Start, seg.Stop)
			b.Write(seg.Value(e.src))
		}
		e.leaf("html_inline", "", b.String())

	case *east.TaskCheckBox:
		// Rendered by the list item; no token.

	default:
		s = e.inlines(n)
	}

	return s
}

// plainText concatenates the text under n, as used for image alt text,
// code spans and table cells.
func (e *emitter) plainText(n ast.Node) string {
	var b bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				b.Write(node.Segment.Value(e.src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(node.Value)
			case *ast.AutoLink:
				b.Write(node.Label(e.src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func linkAttrs(key string, dest, title []byte) map[string]string {
	attrs := map[string]string{key: string(dest)}
	if len(title) > 0 {
		attrs["title"] = string(title)
	}
	return attrs
}
