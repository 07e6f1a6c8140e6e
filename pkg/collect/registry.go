package collect

import (
	"fmt"

	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// slot is one registered collector and its per-parse dispatch state.
type slot struct {
	collector Collector
	name      string
	ignore    []string

	// disabled stops delivery after a timeout.
	disabled bool

	// abandoned marks a collector whose call may still be running,
	// so its Finalize is skipped.
	abandoned bool
}

// Registry holds the collectors of one parse in registration order together
// with the routing table built from their interests.
type Registry struct {
	slots  []slot
	byName map[string]int
	byKind map[string][]int
	byTag  map[string][]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int),
		byKind: make(map[string][]int),
		byTag:  make(map[string][]int),
	}
}

// Register appends a collector and adds it to the routing table.
// Names must be unique within the registry.
func (r *Registry) Register(c Collector) error {
	if c == nil {
		return fmt.Errorf("%w: nil collector", ErrInvalidCollector)
	}
	name := c.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCollector)
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCollector, name)
	}

	interest := c.Interest()
	id := len(r.slots)

	ignore := make([]string, 0, len(interest.IgnoreInside))
	for _, kind := range interest.IgnoreInside {
		ignore = append(ignore, containerName(kind))
	}

	r.slots = append(r.slots, slot{collector: c, name: name, ignore: ignore})
	r.byName[name] = id

	// Slots are appended in registration order, so every route list stays
	// sorted. Repeated interests are collapsed here.
	for _, kind := range interest.Kinds {
		if routes := r.byKind[kind]; len(routes) == 0 || routes[len(routes)-1] != id {
			r.byKind[kind] = append(routes, id)
		}
	}
	for _, tag := range interest.Tags {
		if routes := r.byTag[tag]; len(routes) == 0 || routes[len(routes)-1] != id {
			r.byTag[tag] = append(routes, id)
		}
	}

	return nil
}

// MustRegister registers c and panics on error. For tests and static setup.
func (r *Registry) MustRegister(c Collector) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Len returns the number of registered collectors.
func (r *Registry) Len() int {
	return len(r.slots)
}

// Names returns the collector names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.slots))
	for i := range r.slots {
		names[i] = r.slots[i].name
	}
	return names
}

// Get returns the collector registered under name.
func (r *Registry) Get(name string) (Collector, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.slots[id].collector, true
}

// route appends to dst the slots interested in tok, in registration order
// and without duplicates. The kind and tag lists are both sorted, so a
// linear merge replaces any per-token set.
func (r *Registry) route(tok warehouse.View, dst []int) []int {
	byKind := r.byKind[tok.Kind]
	var byTag []int
	if tok.Tag != "" {
		byTag = r.byTag[tok.Tag]
	}

	switch {
	case len(byTag) == 0:
		return append(dst, byKind...)
	case len(byKind) == 0:
		return append(dst, byTag...)
	}

	i, j := 0, 0
	for i < len(byKind) && j < len(byTag) {
		switch {
		case byKind[i] < byTag[j]:
			dst = append(dst, byKind[i])
			i++
		case byKind[i] > byTag[j]:
			dst = append(dst, byTag[j])
			j++
		default:
			dst = append(dst, byKind[i])
			i++
			j++
		}
	}
	dst = append(dst, byKind[i:]...)
	return append(dst, byTag[j:]...)
}

// release drops every collector reference and the routing table.
func (r *Registry) release() {
	clear(r.slots)
	r.slots = nil
	r.byName = nil
	r.byKind = nil
	r.byTag = nil
}
