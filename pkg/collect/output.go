package collect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// SchemaVersion identifies the shape of Output.
const SchemaVersion = "1.0"

// Output is the merged result of one parse.
type Output struct {
	SchemaVersion string `json:"schema_version"`

	// Source is the document path, when known.
	Source string `json:"source,omitempty"`

	// Digest is the hex sha256 of the document bytes, when known.
	Digest string `json:"digest,omitempty"`

	// Features maps each result key to its collector's value.
	Features map[string]any `json:"features"`

	// Errors lists isolated collector failures.
	Errors []CollectorError `json:"errors"`
}

// HasErrors reports whether any collector failed.
func (o *Output) HasErrors() bool {
	return len(o.Errors) > 0
}

// Keys returns the feature keys in sorted order.
func (o *Output) Keys() []string {
	return slices.Sorted(maps.Keys(o.Features))
}

// Count returns the item count and truncation flag of a bounded feature.
// ok is false when key is absent or its value is not a bounded result.
func (o *Output) Count(key string) (count int, truncated, ok bool) {
	m, isMap := o.Features[key].(map[string]any)
	if !isMap {
		return 0, false, false
	}
	count, ok = m[KeyCount].(int)
	truncated, _ = m[KeyTruncated].(bool)
	return count, truncated, ok
}

// WriteCanonical writes the canonical JSON form of o followed by a newline.
// Map keys are sorted and HTML characters are not escaped, so equal outputs
// serialize to identical bytes.
func (o *Output) WriteCanonical(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o.normalized()); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// MarshalCanonical returns the canonical JSON form of o without a trailing newline.
func (o *Output) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.WriteCanonical(&buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// normalized replaces nil collections so they encode as {} and [] rather than null.
func (o *Output) normalized() *Output {
	out := *o
	if out.Features == nil {
		out.Features = map[string]any{}
	}
	if out.Errors == nil {
		out.Errors = []CollectorError{}
	}
	return &out
}
