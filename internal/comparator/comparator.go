// Package comparator implements the pluggable actual-vs-expected equality
// semantics a test case's ComparatorSpec selects.
package comparator

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"judgecore/internal/types"
	"judgecore/pkg/logger"

	"github.com/google/go-cmp/cmp"
)

// Compare reports whether actual equals expected under the semantics of
// spec. It never panics; malformed inputs fall back to exact equality.
func Compare(ctx context.Context, actual, expected any, spec types.ComparatorSpec) bool {
	switch spec.Kind {
	case types.ComparatorExact:
		return exact(actual, expected)
	case types.ComparatorNumeric:
		return numeric(actual, expected, spec.Tolerance)
	case types.ComparatorUnorderedArray:
		return unorderedArray(actual, expected)
	case types.ComparatorSet:
		return setEqual(actual, expected)
	case types.ComparatorMultiset:
		return unorderedArray(actual, expected)
	case types.ComparatorFloatArray:
		return floatArray(actual, expected, spec.Tolerance)
	default:
		logger.Warn(ctx, "unknown comparator kind, falling back to exact")
		return exact(actual, expected)
	}
}

// exact implements structural deep equality: primitives by value, arrays
// elementwise in order, objects by identical key set and recursive
// equality, null/absence equal only to each other. Delegated to go-cmp
// since actual/expected are generic any trees decoded from JSON.
func exact(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return cmp.Equal(a, b)
}

// numeric compares two numeric values within tolerance, falling back to
// exact when either side isn't numeric.
func numeric(a, b any, tolerance float64) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return exact(a, b)
	}
	return math.Abs(af-bf) <= tolerance
}

// unorderedArray sorts both arrays by the JSON encoding of each element and
// compares the resulting sequences, making it equivalent to multiset
// under element-level deep equality. Non-array operands fall back to exact.
func unorderedArray(a, b any) bool {
	as, aok := asSlice(a)
	bs, bok := asSlice(b)
	if !aok || !bok {
		return exact(a, b)
	}
	if len(as) != len(bs) {
		return false
	}
	aKeys := canonicalKeys(as)
	bKeys := canonicalKeys(bs)
	sort.Strings(aKeys)
	sort.Strings(bKeys)
	for i := range aKeys {
		if aKeys[i] != bKeys[i] {
			return false
		}
	}
	return true
}

// setEqual compares two arrays as sets after canonicalizing each element
// via JSON encoding, ignoring duplicates and order. Non-array operands
// fall back to exact.
func setEqual(a, b any) bool {
	as, aok := asSlice(a)
	bs, bok := asSlice(b)
	if !aok || !bok {
		return exact(a, b)
	}
	aSet := toSet(canonicalKeys(as))
	bSet := toSet(canonicalKeys(bs))
	if len(aSet) != len(bSet) {
		return false
	}
	for k := range aSet {
		if !bSet[k] {
			return false
		}
	}
	return true
}

// floatArray pairwise-compares two equal-length arrays of numbers within
// tolerance. Non-array operands fall back to exact.
func floatArray(a, b any, tolerance float64) bool {
	as, aok := asSlice(a)
	bs, bok := asSlice(b)
	if !aok || !bok {
		return exact(a, b)
	}
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !numeric(as[i], bs[i], tolerance) {
			return false
		}
	}
	return true
}

func asFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func canonicalKeys(items []any) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			keys[i] = ""
			continue
		}
		keys[i] = string(b)
	}
	return keys
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
