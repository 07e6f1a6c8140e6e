// Package collectors provides the built-in feature collectors and the
// catalog the CLI and the extract engine instantiate them from.
package collectors

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
)

// Built-in collector names. Each collector's result key equals its name.
const (
	NameHeadings   = "headings"
	NameSections   = "sections"
	NameLinks      = "links"
	NameImages     = "images"
	NameCodeBlocks = "code_blocks"
	NameTables     = "tables"
	NameHTML       = "html"
)

// Options configures one collector instance.
type Options struct {
	// MaxItems caps the result items; zero selects collect.DefaultMaxItems.
	MaxItems int

	// IgnoreInside adds container kinds whose tokens are skipped.
	IgnoreInside []string
}

// Info describes a catalog entry.
type Info struct {
	Name        string
	Description string
	Kinds       []string

	// DefaultEnabled reports whether extract runs the collector by default.
	DefaultEnabled bool

	// Scoped reports whether the collector honors Options.IgnoreInside.
	Scoped bool

	build func(Options) collect.Collector
}

// New creates a fresh collector instance.
func (i Info) New(opts Options) collect.Collector {
	return i.build(opts)
}

// Catalog returns every built-in collector, sorted by name.
func Catalog() []Info {
	infos := []Info{
		{
			Name:           NameHeadings,
			Description:    "Headings with level, text, line and GitHub-style anchor",
			Kinds:          headingKinds,
			DefaultEnabled: true,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewHeadings(o) },
		},
		{
			Name:           NameSections,
			Description:    "Heading-delimited sections with line span and parent",
			Kinds:          sectionKinds,
			DefaultEnabled: true,
			build:          func(o Options) collect.Collector { return NewSections(o) },
		},
		{
			Name:           NameLinks,
			Description:    "Links with destination, text and scheme allowlist verdict",
			Kinds:          linkKinds,
			DefaultEnabled: true,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewLinks(o) },
		},
		{
			Name:           NameImages,
			Description:    "Images with source, alt text and scheme allowlist verdict",
			Kinds:          imageKinds,
			DefaultEnabled: true,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewImages(o) },
		},
		{
			Name:           NameCodeBlocks,
			Description:    "Fenced and indented code blocks with resolved language",
			Kinds:          codeKinds,
			DefaultEnabled: true,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewCodeBlocks(o) },
		},
		{
			Name:           NameTables,
			Description:    "GFM tables with row and column counts",
			Kinds:          tableKinds,
			DefaultEnabled: true,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewTables(o) },
		},
		{
			Name:           NameHTML,
			Description:    "Raw HTML blocks and inline tags",
			Kinds:          htmlKinds,
			DefaultEnabled: false,
			Scoped:         true,
			build:          func(o Options) collect.Collector { return NewHTML(o) },
		},
	}

	slices.SortFunc(infos, func(a, b Info) int { return cmp.Compare(a.Name, b.Name) })
	return infos
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (Info, bool) {
	for _, info := range Catalog() {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// RegisterAll registers a fresh instance of every named collector, in the
// order given, with its options from opts.
func RegisterAll(reg *collect.Registry, names []string, opts map[string]Options) error {
	for _, name := range names {
		info, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("unknown collector %q", name)
		}
		if err := reg.Register(info.New(opts[name])); err != nil {
			return err
		}
	}
	return nil
}

// DefaultNames returns the names of the collectors enabled by default.
func DefaultNames() []string {
	var names []string
	for _, info := range Catalog() {
		if info.DefaultEnabled {
			names = append(names, info.Name)
		}
	}
	return names
}

// line returns the 0-based start line of a view, or the dispatch line
// when the token carries no map.
func line(hasMap bool, start int, ctx *collect.Context) int {
	if hasMap {
		return start
	}
	return ctx.Line()
}
