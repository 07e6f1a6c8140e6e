package collect

import (
	"context"
	"strings"
	"time"
)

// Context is the dispatch state a collector sees for the current token:
// the enclosing containers, the approximate source line and the deadline of
// the running call.
type Context struct {
	ctx      context.Context
	stack    []string
	inside   map[string]int
	line     int
	index    int
	deadline time.Time
}

func newContext(ctx context.Context) *Context {
	return &Context{
		ctx:    ctx,
		stack:  make([]string, 0, 16),
		inside: make(map[string]int),
	}
}

// Context returns the context.Context of the parse.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Inside reports whether a container of kind encloses the current token.
// Both "link" and "link_open" name the same container.
func (c *Context) Inside(kind string) bool {
	return c.inside[containerName(kind)] > 0
}

// Depth returns the number of open containers around the current token.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Line returns the start line of the most recent token that carried a map.
func (c *Context) Line() int {
	return c.line
}

// Index returns the index of the token being dispatched.
func (c *Context) Index() int {
	return c.index
}

// Expired reports whether the time budget of the current call has run out.
// Long-running collectors should poll it and return early.
func (c *Context) Expired() bool {
	return !c.deadline.IsZero() && time.Now().After(c.deadline)
}

func (c *Context) push(kind string) {
	name := containerName(kind)
	c.stack = append(c.stack, name)
	c.inside[name]++
}

// pop removes the innermost container. Pops on an empty stack are ignored.
func (c *Context) pop() {
	if len(c.stack) == 0 {
		return
	}
	name := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if c.inside[name]--; c.inside[name] <= 0 {
		delete(c.inside, name)
	}
}

func (c *Context) insideAny(kinds []string) bool {
	for _, kind := range kinds {
		if c.inside[kind] > 0 {
			return true
		}
	}
	return false
}

// detach returns a copy for the dispatcher to continue with after a call
// was abandoned, leaving the original to the abandoned goroutine.
func (c *Context) detach() *Context {
	inside := make(map[string]int, len(c.inside))
	for k, v := range c.inside {
		inside[k] = v
	}
	return &Context{
		ctx:    c.ctx,
		stack:  append(make([]string, 0, cap(c.stack)), c.stack...),
		inside: inside,
		line:   c.line,
		index:  c.index,
	}
}

func containerName(kind string) string {
	kind = strings.TrimSuffix(kind, "_open")
	return strings.TrimSuffix(kind, "_close")
}
