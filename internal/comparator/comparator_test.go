package comparator_test

import (
	"context"
	"testing"

	"judgecore/internal/comparator"
	"judgecore/internal/types"
)

func decode(t *testing.T, v any) any {
	t.Helper()
	val, err := types.NewValue(v)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	out, err := val.Interface()
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	return out
}

func TestCompareExact(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorExact}
	cases := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"equal ints", decode(t, 3), decode(t, 3), true},
		{"different ints", decode(t, 3), decode(t, 4), false},
		{"equal arrays in order", decode(t, []int{1, 2}), decode(t, []int{1, 2}), true},
		{"same elements different order", decode(t, []int{1, 2}), decode(t, []int{2, 1}), false},
		{"both nil", nil, nil, true},
		{"one nil", nil, decode(t, 1), false},
		{"equal objects", decode(t, map[string]int{"a": 1}), decode(t, map[string]int{"a": 1}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := comparator.Compare(context.Background(), c.a, c.b, spec); got != c.expected {
				t.Fatalf("Compare(%v, %v) = %v, want %v", c.a, c.b, got, c.expected)
			}
		})
	}
}

func TestCompareNumericWithinTolerance(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorNumeric, Tolerance: 0.01}
	if !comparator.Compare(context.Background(), decode(t, 1.001), decode(t, 1.0), spec) {
		t.Fatalf("expected values within tolerance to compare equal")
	}
	if comparator.Compare(context.Background(), decode(t, 1.1), decode(t, 1.0), spec) {
		t.Fatalf("expected values outside tolerance to compare unequal")
	}
}

func TestCompareUnorderedArray(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorUnorderedArray}
	if !comparator.Compare(context.Background(), decode(t, []int{3, 1, 2}), decode(t, []int{1, 2, 3}), spec) {
		t.Fatalf("expected permutations of the same multiset to compare equal")
	}
	if comparator.Compare(context.Background(), decode(t, []int{1, 2}), decode(t, []int{1, 2, 2}), spec) {
		t.Fatalf("expected different multiplicities to compare unequal")
	}
}

func TestCompareMultisetAliasesUnorderedArray(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorMultiset}
	if !comparator.Compare(context.Background(), decode(t, []int{1, 1, 2}), decode(t, []int{2, 1, 1}), spec) {
		t.Fatalf("expected multiset comparator to match unorderedArray semantics")
	}
}

func TestCompareSetIgnoresDuplicates(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorSet}
	if !comparator.Compare(context.Background(), decode(t, []int{1, 1, 2}), decode(t, []int{2, 1}), spec) {
		t.Fatalf("expected set comparator to ignore duplicate elements")
	}
}

func TestCompareFloatArray(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorFloatArray, Tolerance: 0.05}
	if !comparator.Compare(context.Background(), decode(t, []float64{1.01, 2.02}), decode(t, []float64{1.0, 2.0}), spec) {
		t.Fatalf("expected pairwise-close float arrays to compare equal")
	}
	if comparator.Compare(context.Background(), decode(t, []float64{1.0, 2.0}), decode(t, []float64{1.0, 2.5}), spec) {
		t.Fatalf("expected a pair outside tolerance to compare unequal")
	}
}

func TestCompareArrayComparatorFallsBackToExactForNonArrays(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorUnorderedArray}
	if !comparator.Compare(context.Background(), decode(t, 5), decode(t, 5), spec) {
		t.Fatalf("expected non-array operands to fall back to exact equality")
	}
	if comparator.Compare(context.Background(), decode(t, 5), decode(t, 6), spec) {
		t.Fatalf("expected non-array operands to fall back to exact inequality")
	}
}

func TestCompareUnknownKindFallsBackToExact(t *testing.T) {
	spec := types.ComparatorSpec{Kind: types.ComparatorKind("bogus")}
	if !comparator.Compare(context.Background(), decode(t, 1), decode(t, 1), spec) {
		t.Fatalf("expected unknown comparator kind to fall back to exact equality")
	}
}
