package judge

import (
	"context"
	"fmt"

	"judgecore/internal/comparator"
	"judgecore/internal/types"
)

// defaultWeight is substituted for a test case that declares no weight,
// so an all-unweighted problem still aggregates as a plain pass count.
const defaultWeight = 1.0

// aggregate compares each test's harness-reported result against its
// expectation and rolls the per-test outcomes up into a final verdict.
func aggregate(ctx context.Context, tests []types.TestCase, output types.JudgeOutput, userStdout, stderr string) types.JudgeResult {
	byID := make(map[int]types.OutputResult, len(output.Results))
	for _, r := range output.Results {
		byID[r.ID] = r
	}

	testResults := make([]types.TestResult, len(tests))
	var totalWeight, passedWeight float64
	var worst types.Verdict
	var worstPriority int

	for i, t := range tests {
		weight := t.Weight
		if weight <= 0 {
			weight = defaultWeight
		}
		totalWeight += weight

		out, ok := byID[i]
		tr := judgeOneTest(ctx, t, out, ok)
		tr.TimeMs = output.Meta.TimeMs

		if tr.Passed {
			passedWeight += weight
		}
		testResults[i] = tr

		if p := types.PriorityOf(tr.Verdict); p > worstPriority {
			worstPriority = p
			worst = tr.Verdict
		}
	}

	score := 0.0
	if totalWeight > 0 {
		score = passedWeight / totalWeight
	}

	verdict := types.VerdictAC
	switch {
	case score >= 1.0:
		verdict = types.VerdictAC
	case worstPriority > 0:
		verdict = worst
		if verdict == types.VerdictWA && score > 0 {
			verdict = types.VerdictPA
		}
	default:
		verdict = types.VerdictWA
		if score > 0 {
			verdict = types.VerdictPA
		}
	}

	return types.JudgeResult{
		Verdict:     verdict,
		Score:       score,
		TestResults: testResults,
		TotalTimeMs: output.Meta.TimeMs,
		UserStdout:  userStdout,
		Stderr:      stderr,
	}
}

// judgeOneTest compares a single harness result against its test case's
// expectation, or produces an RE test result when the harness didn't
// report this test at all or reported it as an internal error.
func judgeOneTest(ctx context.Context, t types.TestCase, out types.OutputResult, reported bool) types.TestResult {
	tr := types.TestResult{
		TestID:         t.TestID,
		Visibility:     t.Visibility,
		ExpectedOutput: t.Expected,
	}

	if !reported {
		tr.Verdict = types.VerdictRE
		tr.Error = "harness reported no result for this test"
		return tr
	}

	tr.ActualOutput = out.Output

	if out.Status == types.ResultError {
		tr.Verdict = types.VerdictRE
		tr.Error = out.Error
		return tr
	}

	expected, err := t.Expected.Interface()
	if err != nil {
		tr.Verdict = types.VerdictRE
		tr.Error = fmt.Sprintf("could not decode expected value: %v", err)
		return tr
	}
	actual, err := out.Output.Interface()
	if err != nil {
		tr.Verdict = types.VerdictRE
		tr.Error = fmt.Sprintf("could not decode actual value: %v", err)
		return tr
	}

	if comparator.Compare(ctx, actual, expected, t.Comparator) {
		tr.Passed = true
		tr.Verdict = types.VerdictAC
		return tr
	}
	tr.Verdict = types.VerdictWA
	return tr
}

// allTestsVerdict marks every test with verdict and attaches message as the
// submission-level runtime error, used for failures that occur before the
// engine produces any per-test information (harness build, stdin encoding).
func allTestsVerdict(tests []types.TestCase, verdict types.Verdict, message string) types.JudgeResult {
	return types.JudgeResult{
		Verdict:      verdict,
		Score:        0,
		TestResults:  uniformResults(tests, verdict, 0),
		RuntimeError: message,
	}
}

// allTestsVerdictTimed is allTestsVerdict plus a measured batch time, used
// for engine-level failures (timeout, OOM, sandbox error, protocol error)
// where the run phase did execute for some measurable duration.
func allTestsVerdictTimed(tests []types.TestCase, verdict types.Verdict, message string, timeMs int) types.JudgeResult {
	r := allTestsVerdict(tests, verdict, message)
	r.TotalTimeMs = timeMs
	return r
}

// allTestsVerdictWithCompileError marks every test CE and records stderr as
// the submission's compilation error, per the compile-failure short-circuit.
func allTestsVerdictWithCompileError(tests []types.TestCase, stderr string) types.JudgeResult {
	return types.JudgeResult{
		Verdict:          types.VerdictCE,
		Score:            0,
		TestResults:      uniformResults(tests, types.VerdictCE, 0),
		CompilationError: stderr,
	}
}

func uniformResults(tests []types.TestCase, verdict types.Verdict, timeMs int) []types.TestResult {
	out := make([]types.TestResult, len(tests))
	for i, t := range tests {
		out[i] = types.TestResult{
			TestID:     t.TestID,
			Verdict:    verdict,
			Visibility: t.Visibility,
			TimeMs:     timeMs,
		}
	}
	return out
}

// runPhaseTimeMs extracts the measured run-phase duration from an
// ExecutionResult that carries an engine-level error, or 0 if the run
// phase never produced a PhaseResult at all.
func runPhaseTimeMs(res types.ExecutionResult) int {
	if res.Run == nil {
		return 0
	}
	return res.Run.TimeMs
}
