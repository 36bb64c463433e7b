// Package types defines the shared data model crossing the engine/judge
// boundary: value shapes, problem definitions, execution requests and
// results, and the judge's own result surface.
package types

import "encoding/json"

// Value is a tagged JSON-interchange value used for test inputs, expected
// outputs, and harness payload contents. It holds the value's raw JSON
// encoding; a Value with no bytes reads as JSON null.
type Value struct {
	raw json.RawMessage
}

// NewValue wraps an already-decoded Go value (number, string, bool, nil,
// []Value, map[string]Value, ...) as a Value by round-tripping it through
// JSON encoding. Callers constructing test fixtures typically use this.
func NewValue(v any) (Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return Value{raw: b}, nil
}

// RawValue wraps already-encoded JSON bytes directly, skipping re-encoding.
func RawValue(b []byte) Value {
	return Value{raw: append(json.RawMessage(nil), b...)}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(json.RawMessage(nil), b...)
	return nil
}

// Raw returns the underlying JSON bytes.
func (v Value) Raw() json.RawMessage {
	return v.raw
}

// Decode unmarshals the value into dst.
func (v Value) Decode(dst any) error {
	if v.raw == nil {
		return json.Unmarshal([]byte("null"), dst)
	}
	return json.Unmarshal(v.raw, dst)
}

// IsNull reports whether the value is JSON null or unset.
func (v Value) IsNull() bool {
	return v.raw == nil || string(v.raw) == "null"
}

// Interface decodes the value into a generic any (number/string/bool/nil/
// []any/map[string]any), the canonical shape comparators operate on.
func (v Value) Interface() (any, error) {
	var out any
	if err := v.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
