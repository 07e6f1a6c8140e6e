package collect_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// paragraphs builds n paragraphs of one link each.
func paragraphs(n int) (string, []mdast.Token) {
	tokens := make([]mdast.Token, 0, n*7)
	var doc []byte
	for i := range n {
		line := 2 * i
		link := tok("link_open", mdast.Open, "a", "")
		link.Attrs = map[string]string{"href": "https://example.com"}
		tokens = append(tokens,
			tok("paragraph_open", mdast.Open, "p", "", line, line+1),
			tok("inline", mdast.Leaf, "", "[x](https://example.com)", line, line+1),
			link,
			tok("text", mdast.Leaf, "", "x"),
			tok("link_close", mdast.Close, "a", ""),
			tok("paragraph_close", mdast.Close, "p", ""),
		)
		doc = append(doc, "[x](https://example.com)\n\n"...)
	}
	return string(doc), tokens
}

func BenchmarkDispatch(b *testing.B) {
	for _, n := range []int{1_000, 10_000, 100_000} {
		doc, tokens := paragraphs(n)
		wh, err := warehouse.New(mdast.NewBuffer("", []byte(doc)), tokens, warehouse.Limits{})
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("tokens=%d", wh.Len()), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				reg := collect.NewRegistry()
				for i := range 20 {
					// Most collectors want kinds absent from the stream.
					reg.MustRegister(newHook(fmt.Sprintf("c%d", i), collect.Interest{Kinds: []string{fmt.Sprintf("kind%d", i)}}))
				}
				reg.MustRegister(newHook("links", collect.Interest{Kinds: []string{"link_open"}, Tags: []string{"a"}}))

				d := collect.NewDispatcher(reg, collect.Options{})
				if err := d.Run(context.Background(), wh); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestDispatch_CallsScaleWithInterest(t *testing.T) {
	t.Parallel()

	for _, n := range []int{10, 1000} {
		doc, tokens := paragraphs(n)
		reg := collect.NewRegistry()
		for i := range 50 {
			reg.MustRegister(newHook(fmt.Sprintf("idle%d", i), collect.Interest{Kinds: []string{"fence"}}))
		}
		reg.MustRegister(newHook("links", collect.Interest{Tags: []string{"a"}}))

		d := collect.NewDispatcher(reg, collect.Options{})
		if err := d.Run(context.Background(), newWarehouse(t, doc, tokens)); err != nil {
			t.Fatal(err)
		}
		if got, want := d.Delivered(), 2*n; got != want {
			t.Errorf("n=%d: delivered %d calls, want %d", n, got, want)
		}
	}
}
