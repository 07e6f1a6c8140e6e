package collectors

import (
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/langdetect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var codeKinds = []string{"fence", "code_block"}

// CodeBlock is one code_blocks result item.
type CodeBlock struct {
	Fenced         bool              `json:"fenced"`
	Info           string            `json:"info,omitempty"`
	Language       string            `json:"language"`
	LanguageSource langdetect.Source `json:"language_source"`
	Lines          int               `json:"lines"`
	Line           int               `json:"line"`
}

// CodeBlocks collects fenced and indented code blocks.
type CodeBlocks struct {
	collect.Base

	items     *collect.Bounded[CodeBlock]
	languages map[string]int
}

// NewCodeBlocks creates a code_blocks collector.
func NewCodeBlocks(opts Options) *CodeBlocks {
	return &CodeBlocks{
		Base:      collect.NewBase(NameCodeBlocks, collect.Interest{Kinds: codeKinds, IgnoreInside: opts.IgnoreInside}),
		items:     collect.NewBounded[CodeBlock](opts.MaxItems),
		languages: make(map[string]int),
	}
}

// OnToken implements collect.Collector. Blocks past the item cap are
// neither language-detected nor counted in languages.
func (c *CodeBlocks) OnToken(_ int, tok warehouse.View, ctx *collect.Context, _ *warehouse.Warehouse) error {
	if c.items.Full() {
		c.items.Drop()
		return nil
	}

	lang := langdetect.Resolve(tok.Info, []byte(tok.Content))
	c.languages[lang.Language]++

	c.items.Add(CodeBlock{
		Fenced:         tok.Kind == "fence",
		Info:           tok.Info,
		Language:       lang.Language,
		LanguageSource: lang.Source,
		Lines:          countLines(tok.Content),
		Line:           line(tok.HasMap, tok.StartLine, ctx),
	})
	return nil
}

// Finalize implements collect.Collector.
func (c *CodeBlocks) Finalize() (map[string]any, error) {
	result := c.items.Result()
	result["languages"] = c.languages
	return map[string]any{NameCodeBlocks: result}, nil
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
