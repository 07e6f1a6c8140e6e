package collectors

import (
	"strconv"
	"strings"
	"unicode"
)

// anchors generates GitHub-compatible heading anchors, suffixing repeats
// with -1, -2 and so on.
type anchors struct {
	seen map[string]int
}

func newAnchors() *anchors {
	return &anchors{seen: make(map[string]int)}
}

func (a *anchors) next(text string) string {
	base := slug(text)
	n := a.seen[base]
	a.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// slug lowercases text, keeps letters, digits, '-' and '_', turns spaces
// into hyphens and drops everything else.
func slug(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for _, ch := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(ch), unicode.IsNumber(ch), ch == '-', ch == '_':
			sb.WriteRune(ch)
		case ch == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
