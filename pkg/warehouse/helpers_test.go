package warehouse_test

import "github.com/yaklabco/mdwarehouse/pkg/mdast"

func open(kind, tag string, start, end int) mdast.Token {
	return mdast.Token{Kind: kind, Nesting: mdast.Open, Tag: tag, Map: mdast.NewLineRange(start, end)}
}

func closeTok(kind, tag string) mdast.Token {
	return mdast.Token{Kind: kind, Nesting: mdast.Close, Tag: tag}
}

func leaf(kind, content string) mdast.Token {
	return mdast.Token{Kind: kind, Nesting: mdast.Leaf, Content: content}
}

func heading(level int, title string, start, end int) []mdast.Token {
	tag := "h" + string(rune('0'+level))
	h := open("heading_open", tag, start, end)
	h.Level = level
	inline := leaf("inline", title)
	inline.Map = mdast.NewLineRange(start, end)
	return []mdast.Token{h, inline, leaf("text", title), closeTok("heading_close", tag)}
}

func paragraph(text string, start, end int) []mdast.Token {
	inline := leaf("inline", text)
	inline.Map = mdast.NewLineRange(start, end)
	return []mdast.Token{open("paragraph_open", "p", start, end), inline, leaf("text", text), closeTok("paragraph_close", "p")}
}

func concat(parts ...[]mdast.Token) []mdast.Token {
	var out []mdast.Token
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

const scenarioDoc = "# Title\n\nBody\n\n## Sub\n\nMore\n"

// scenarioTokens is the token stream a CommonMark tokenizer emits for scenarioDoc.
func scenarioTokens() []mdast.Token {
	return concat(
		heading(1, "Title", 0, 1),
		paragraph("Body", 2, 3),
		heading(2, "Sub", 4, 5),
		paragraph("More", 6, 7),
	)
}
