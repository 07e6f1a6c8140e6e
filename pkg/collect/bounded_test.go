package collect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// cappedTexts collects text contents into a Bounded list.
type cappedTexts struct {
	collect.Base
	items *collect.Bounded[string]
}

func (c *cappedTexts) OnToken(_ int, tok warehouse.View, _ *collect.Context, _ *warehouse.Warehouse) error {
	c.items.Add(tok.Content)
	return nil
}

func (c *cappedTexts) Finalize() (map[string]any, error) {
	return map[string]any{c.Name(): c.items.Result()}, nil
}

func TestBounded_CapTwoOfFive(t *testing.T) {
	t.Parallel()

	tokens := make([]mdast.Token, 0, 7)
	tokens = append(tokens, tok("paragraph_open", mdast.Open, "p", "", 0, 1))
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		tokens = append(tokens, tok("text", mdast.Leaf, "", s))
	}
	tokens = append(tokens, tok("paragraph_close", mdast.Close, "p", ""))

	collector := &cappedTexts{
		Base:  collect.NewBase("texts", collect.Interest{Kinds: []string{"text"}}),
		items: collect.NewBounded[string](2),
	}

	reg := collect.NewRegistry()
	reg.MustRegister(collector)
	d := collect.NewDispatcher(reg, collect.Options{})
	require.NoError(t, d.Run(context.Background(), newWarehouse(t, "abcde\n", tokens)))

	out, err := d.Finalize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		collect.KeyItems:     []string{"a", "b"},
		collect.KeyTruncated: true,
		collect.KeyCount:     2,
	}, out.Features["texts"])
}

func TestBounded(t *testing.T) {
	t.Parallel()

	list := collect.NewBounded[int](0)
	assert.Equal(t, collect.DefaultMaxItems, list.Limit())

	list = collect.NewBounded[int](3)
	assert.Equal(t, map[string]any{
		collect.KeyItems:     []int{},
		collect.KeyTruncated: false,
		collect.KeyCount:     0,
	}, list.Result())

	assert.True(t, list.Add(1))
	assert.True(t, list.Add(2))
	assert.False(t, list.Full())
	assert.True(t, list.Add(3))
	assert.True(t, list.Full())
	assert.False(t, list.Truncated())

	assert.False(t, list.Add(4))
	assert.True(t, list.Truncated())
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, []int{1, 2, 3}, list.Items())
}

func TestBounded_Drop(t *testing.T) {
	t.Parallel()

	b := collect.NewBounded[int](1)
	assert.True(t, b.Add(1))
	assert.False(t, b.Truncated())
	require.True(t, b.Full())

	b.Drop()
	assert.True(t, b.Truncated())
	assert.Equal(t, []int{1}, b.Items())
}
