package collect

// DefaultMaxItems is the item cap used when none is configured.
const DefaultMaxItems = 1000

// Result keys of a bounded collector result.
const (
	KeyItems     = "items"
	KeyTruncated = "truncated"
	KeyCount     = "count"
)

// Bounded is an append-only item list with a cap. Items past the cap are
// dropped and the list is marked truncated.
type Bounded[T any] struct {
	limit     int
	items     []T
	truncated bool
}

// NewBounded creates a list capped at limit; a limit of zero or less
// selects DefaultMaxItems.
func NewBounded[T any](limit int) *Bounded[T] {
	if limit <= 0 {
		limit = DefaultMaxItems
	}
	return &Bounded[T]{limit: limit}
}

// Add appends item and reports whether it was kept.
func (b *Bounded[T]) Add(item T) bool {
	if len(b.items) >= b.limit {
		b.truncated = true
		return false
	}
	b.items = append(b.items, item)
	return true
}

// Drop marks the list truncated without building an item. Collectors call
// it once Full reports true to skip the cost of an item that would be dropped.
func (b *Bounded[T]) Drop() {
	b.truncated = true
}

// Full reports whether further items would be dropped.
func (b *Bounded[T]) Full() bool {
	return len(b.items) >= b.limit
}

// Len returns the number of kept items.
func (b *Bounded[T]) Len() int {
	return len(b.items)
}

// Limit returns the cap.
func (b *Bounded[T]) Limit() int {
	return b.limit
}

// Truncated reports whether any item was dropped.
func (b *Bounded[T]) Truncated() bool {
	return b.truncated
}

// Items returns the kept items.
func (b *Bounded[T]) Items() []T {
	return b.items
}

// Result returns {items, truncated, count}. Count is the number of kept items.
func (b *Bounded[T]) Result() map[string]any {
	items := b.items
	if items == nil {
		items = []T{}
	}
	return map[string]any{
		KeyItems:     items,
		KeyTruncated: b.truncated,
		KeyCount:     len(items),
	}
}
