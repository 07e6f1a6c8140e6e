package warehouse_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// poisoned panics on any method call, standing in for a plugin payload
// whose accessors have side effects.
type poisoned struct{}

func (poisoned) String() string { panic("poisoned accessor invoked") }
func (poisoned) Error() string  { panic("poisoned accessor invoked") }

func TestCanonicalize_CopiesAllowlistedFields(t *testing.T) {
	t.Parallel()

	tok := mdast.Token{
		Kind:    "link_open",
		Nesting: mdast.Open,
		Tag:     "a",
		Content: "",
		Map:     mdast.NewLineRange(3, 4),
		Attrs: map[string]string{
			"href":    "https://example.com",
			"title":   "Example",
			"onclick": "alert(1)",
		},
		Meta: poisoned{},
	}

	view := warehouse.Canonicalize(tok, 100)

	assert.Equal(t, warehouse.View{
		Kind:      "link_open",
		Nesting:   mdast.Open,
		Tag:       "a",
		HasMap:    true,
		StartLine: 3,
		EndLine:   4,
		Href:      "https://example.com",
		Title:     "Example",
	}, view)

	// Mutating the source after canonicalization does not leak into the view.
	tok.Attrs["href"] = "javascript:alert(1)"
	tok.Map.Start = 0
	assert.Equal(t, "https://example.com", view.Href)
	assert.Equal(t, 3, view.StartLine)
}

func TestCanonicalize_ClampsLineRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         *mdast.LineRange
		start, end int
		hasMap     bool
	}{
		{"no map", nil, 0, 0, false},
		{"in range", mdast.NewLineRange(2, 5), 2, 5, true},
		{"negative start", mdast.NewLineRange(-7, 3), 0, 3, true},
		{"end past max", mdast.NewLineRange(8, 1_000_000_000), 8, 10, true},
		{"start after end", mdast.NewLineRange(9, 4), 4, 4, true},
		{"both past max", mdast.NewLineRange(50, 40), 10, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view := warehouse.Canonicalize(mdast.Token{Kind: "x", Map: tt.in}, 10)
			assert.Equal(t, tt.hasMap, view.HasMap)
			assert.Equal(t, tt.start, view.StartLine)
			assert.Equal(t, tt.end, view.EndLine)
		})
	}
}

func TestCanonicalize_UnknownNestingIsLeaf(t *testing.T) {
	t.Parallel()

	view := warehouse.Canonicalize(mdast.Token{Kind: "weird", Nesting: 5}, 10)
	assert.Equal(t, mdast.Leaf, view.Nesting)
}

func TestView_HasOnlyPrimitiveFields(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeOf(warehouse.View{})
	for i := range typ.NumField() {
		field := typ.Field(i)
		switch field.Type.Kind() {
		case reflect.String, reflect.Int, reflect.Int8, reflect.Bool:
		default:
			t.Errorf("field %s has non-primitive kind %s", field.Name, field.Type.Kind())
		}
	}
}

func TestNew_ClampsToBufferLines(t *testing.T) {
	t.Parallel()

	tokens := []mdast.Token{open("paragraph_open", "p", 1, 900), closeTok("paragraph_close", "p")}
	wh, err := warehouse.New(mdast.NewBuffer("", []byte("a\nb\n")), tokens, warehouse.Limits{MaxLine: 500})
	assert.NoError(t, err)

	view, _ := wh.View(0)
	assert.Equal(t, 2, view.EndLine)
	assert.Equal(t, "b\n", wh.TokenText(0))
}

func TestLimits_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, warehouse.Limits{
		MaxTokens: warehouse.DefaultMaxTokens,
		MaxBytes:  warehouse.DefaultMaxBytes,
		MaxLine:   warehouse.DefaultMaxLine,
	}, warehouse.DefaultLimits())

	assert.NoError(t, warehouse.Limits{}.Check(warehouse.DefaultMaxBytes, warehouse.DefaultMaxTokens))
	assert.ErrorIs(t, warehouse.Limits{}.Check(warehouse.DefaultMaxBytes+1, 0), warehouse.ErrByteLimit)
}
