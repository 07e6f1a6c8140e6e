package collect

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/mdwarehouse/internal/logging"
)

// Finalize calls every collector's Finalize in registration order and merges
// the results into one Output. A key produced by two collectors is fatal.
// Collectors abandoned by a preemptive timeout are skipped.
//
// Finalize releases every collector reference held by the dispatcher and its
// registry, whether or not it succeeds.
func (d *Dispatcher) Finalize(ctx context.Context) (*Output, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.running.Store(false)

	if d.state == stateFinalized {
		return nil, ErrFinalized
	}
	d.state = stateFinalized
	defer d.reg.release()

	features := make(map[string]any)
	owners := make(map[string]string)

	for i := range d.reg.slots {
		sl := &d.reg.slots[i]
		if sl.abandoned {
			continue
		}

		d.begin(i)
		d.calls.Add(1)
		result, err := finalizeSafely(sl.collector)
		d.calls.Add(-1)
		if d.end(i) {
			return nil, fmt.Errorf("collector %q: %w", sl.name, ErrReentrantDispatch)
		}
		if err != nil {
			kind := KindFinalize
			if classify(err) == KindPanic {
				kind = KindPanic
			}
			cerr := CollectorError{Collector: sl.name, Token: -1, Kind: kind, Message: err.Error(), Err: err}
			if rerr := d.record(ctx, cerr); rerr != nil {
				return nil, rerr
			}
			continue
		}

		for _, key := range slices.Sorted(maps.Keys(result)) {
			if first, dup := owners[key]; dup {
				logging.FromContext(ctx).Debug("duplicate result key",
					logging.FieldKey, key,
					logging.FieldCollector, sl.name)
				return nil, &DuplicateKeyError{Key: key, First: first, Second: sl.name}
			}
			owners[key] = sl.name
			features[key] = result[key]
		}
	}

	return &Output{
		SchemaVersion: SchemaVersion,
		Features:      features,
		Errors:        d.Errors(),
	}, nil
}

func finalizeSafely(c Collector) (result map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &PanicError{Value: r}
		}
	}()
	return c.Finalize()
}
