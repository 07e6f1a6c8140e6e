package runner

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yaklabco/mdwarehouse/pkg/extract"
)

// dedupe shares extraction results between files with identical content.
// Engine options are fixed for a run, so the content digest is a complete key.
type dedupe struct {
	group   singleflight.Group
	mu      sync.Mutex
	results map[string]*extract.Result
}

func newDedupe() *dedupe {
	return &dedupe{results: make(map[string]*extract.Result)}
}

// do returns the result for digest, calling compute at most once per digest.
// Errors are not cached. shared is true when the result came from another file.
func (d *dedupe) do(digest string, compute func() (*extract.Result, error)) (*extract.Result, bool, error) {
	if res, ok := d.lookup(digest); ok {
		return res, true, nil
	}

	computed := false
	val, err, _ := d.group.Do(digest, func() (any, error) {
		if res, ok := d.lookup(digest); ok {
			return res, nil
		}
		computed = true
		res, err := compute()
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.results[digest] = res
		d.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*extract.Result), !computed, nil
}

func (d *dedupe) lookup(digest string) (*extract.Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	res, ok := d.results[digest]
	return res, ok
}

// rebind copies res for a file at path. Features are shared and read-only.
func rebind(res *extract.Result, path string) *extract.Result {
	cp := *res
	out := *res.Output
	out.Source = path
	cp.Output = &out
	return &cp
}
