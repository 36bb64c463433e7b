package types_test

import (
	"testing"

	"judgecore/internal/types"
)

func TestValueRoundTrip(t *testing.T) {
	v, err := types.NewValue(map[string]any{"a": 1, "b": []any{1, 2, 3}})
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	var out map[string]any
	if err := v.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["a"].(float64) != 1 {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestValueIsNull(t *testing.T) {
	var zero types.Value
	if !zero.IsNull() {
		t.Fatalf("expected zero-value Value to be null")
	}
	v, _ := types.NewValue(nil)
	if !v.IsNull() {
		t.Fatalf("expected NewValue(nil) to be null")
	}
	v2, _ := types.NewValue(0)
	if v2.IsNull() {
		t.Fatalf("expected NewValue(0) to not be null")
	}
}

func TestTypeSpecContainsKindRecursesThroughOfAndElementsAndFields(t *testing.T) {
	treeOfInts := types.TypeSpec{Kind: types.KindTree, Of: &types.TypeSpec{Kind: types.KindInt}}
	if !treeOfInts.ContainsKind(types.KindTree) {
		t.Fatalf("expected top-level kind match")
	}

	nested := types.TypeSpec{Kind: types.KindArray, Of: &types.TypeSpec{Kind: types.KindLinkedList, Of: &types.TypeSpec{Kind: types.KindInt}}}
	if !nested.ContainsKind(types.KindLinkedList) {
		t.Fatalf("expected ContainsKind to recurse through Of")
	}
	if nested.ContainsKind(types.KindGraph) {
		t.Fatalf("expected no false positive for an absent kind")
	}

	tuple := types.TypeSpec{Kind: types.KindTuple, Elements: []types.TypeSpec{
		{Kind: types.KindInt},
		{Kind: types.KindGraph},
	}}
	if !tuple.ContainsKind(types.KindGraph) {
		t.Fatalf("expected ContainsKind to recurse through Elements")
	}

	obj := types.TypeSpec{Kind: types.KindObject, Fields: map[string]types.TypeSpec{
		"root": {Kind: types.KindTree, Of: &types.TypeSpec{Kind: types.KindInt}},
	}}
	if !obj.ContainsKind(types.KindTree) {
		t.Fatalf("expected ContainsKind to recurse through Fields")
	}
}

func TestPriorityOfOrdersVerdictsCorrectly(t *testing.T) {
	if types.PriorityOf(types.VerdictRE) <= types.PriorityOf(types.VerdictTLE) {
		t.Fatalf("expected RE to outrank TLE")
	}
	if types.PriorityOf(types.VerdictTLE) <= types.PriorityOf(types.VerdictMLE) {
		t.Fatalf("expected TLE to outrank MLE")
	}
	if types.PriorityOf(types.VerdictMLE) <= types.PriorityOf(types.VerdictWA) {
		t.Fatalf("expected MLE to outrank WA")
	}
	if types.PriorityOf(types.VerdictAC) != 0 || types.PriorityOf(types.VerdictCE) != 0 || types.PriorityOf(types.VerdictPA) != 0 {
		t.Fatalf("expected AC/CE/PA to carry no aggregation priority")
	}
}

func TestTestResultRedactClearsOutputs(t *testing.T) {
	tr := types.TestResult{
		TestID:         "t0",
		ActualOutput:   mustValue(t, 1),
		ExpectedOutput: mustValue(t, 2),
	}
	redacted := tr.Redact()
	if !redacted.ActualOutput.IsNull() || !redacted.ExpectedOutput.IsNull() {
		t.Fatalf("expected Redact to clear both output fields")
	}
	if tr.ActualOutput.IsNull() {
		t.Fatalf("expected Redact to not mutate the receiver's original copy")
	}
}

func TestJudgeResultRedactedOnlyAffectsHiddenTests(t *testing.T) {
	r := types.JudgeResult{
		Verdict: types.VerdictAC,
		Score:   1,
		Stderr:  "some debug trace",
		TestResults: []types.TestResult{
			{TestID: "visible", Visibility: types.VisibilityVisible, ActualOutput: mustValue(t, 1)},
			{TestID: "hidden", Visibility: types.VisibilityHidden, ActualOutput: mustValue(t, 2)},
		},
	}
	redacted := r.Redacted()
	if redacted.Stderr != "" {
		t.Fatalf("expected Redacted to strip stderr")
	}
	if redacted.TestResults[0].ActualOutput.IsNull() {
		t.Fatalf("expected the visible test's output to survive redaction")
	}
	if !redacted.TestResults[1].ActualOutput.IsNull() {
		t.Fatalf("expected the hidden test's output to be redacted")
	}
}

func TestProblemEffectiveLimitsFallBackToDefaults(t *testing.T) {
	p := types.Problem{}
	if p.EffectiveTimeLimitMs() != types.DefaultTimeLimitMs {
		t.Fatalf("expected default time limit, got %d", p.EffectiveTimeLimitMs())
	}
	if p.EffectiveMemoryLimitMb() != types.DefaultMemoryLimitMb {
		t.Fatalf("expected default memory limit, got %d", p.EffectiveMemoryLimitMb())
	}
	p.TimeLimitMs = 5000
	p.MemoryLimitMb = 512
	if p.EffectiveTimeLimitMs() != 5000 || p.EffectiveMemoryLimitMb() != 512 {
		t.Fatalf("expected explicit limits to be honored")
	}
}

func TestProblemSelectTestsFiltersByVisibility(t *testing.T) {
	p := types.Problem{Tests: []types.TestCase{
		{TestID: "a", Visibility: types.VisibilityVisible},
		{TestID: "b", Visibility: types.VisibilityHidden},
		{TestID: "c", Visibility: types.VisibilityVisible},
	}}
	all := p.SelectTests(types.FilterAll)
	if len(all) != 3 {
		t.Fatalf("expected FilterAll to return every test, got %d", len(all))
	}
	visible := p.SelectTests(types.FilterVisible)
	if len(visible) != 2 || visible[0].TestID != "a" || visible[1].TestID != "c" {
		t.Fatalf("expected only visible tests in order, got %+v", visible)
	}
}

func mustValue(t *testing.T, v any) types.Value {
	t.Helper()
	val, err := types.NewValue(v)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	return val
}
