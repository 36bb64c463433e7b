// Package judge implements the top-level orchestrator: given a problem, a
// candidate solution, and a test filter, it builds the harness, invokes
// the execution engine, parses the harness's output, compares each result
// against its expectation, and aggregates a final verdict. No exception
// escapes Judge; every failure mode is normalized into a verdict.
package judge

import (
	"context"
	"fmt"

	"judgecore/internal/engine"
	"judgecore/internal/harness"
	"judgecore/internal/protocol"
	"judgecore/internal/types"
	"judgecore/pkg/logger"

	"go.uber.org/zap"
)

const (
	minCompileTimeoutMs = 20_000
	minRunTimeoutMs     = 30_000
	compileTimeoutScale = 2
)

// Orchestrator composes the harness builder, execution engine, output
// parser, and comparators into a single submission -> verdict pipeline.
type Orchestrator struct {
	eng *engine.Engine
}

// NewOrchestrator creates an Orchestrator backed by eng.
func NewOrchestrator(eng *engine.Engine) *Orchestrator {
	return &Orchestrator{eng: eng}
}

// Judge runs one submission to completion and always returns a JudgeResult.
func (o *Orchestrator) Judge(ctx context.Context, problem types.Problem, candidateCode string, language string, filter types.Filter, env map[string]string) (result types.JudgeResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "orchestrator panic recovered", zap.Any("panic", r))
			result = types.JudgeResult{Verdict: types.VerdictRE, Score: 0, RuntimeError: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	tests := problem.SelectTests(filter)
	if len(tests) == 0 {
		return types.JudgeResult{Verdict: types.VerdictAC, Score: 1.0}
	}

	bundle, err := harness.BuildHarness(problem, language, candidateCode)
	if err != nil {
		return allTestsVerdict(tests, types.VerdictRE, fmt.Sprintf("harness configuration error: %v", err))
	}

	stdin, err := protocol.BuildStdin(tests)
	if err != nil {
		return allTestsVerdict(tests, types.VerdictRE, fmt.Sprintf("stdin encoding error: %v", err))
	}

	req := buildExecutionRequest(problem, bundle, stdin, language, len(tests), env)
	execResult := o.eng.Execute(ctx, req)

	if execResult.Compile != nil && !execResult.Compile.Success {
		return allTestsVerdictWithCompileError(tests, execResult.Compile.Stderr)
	}

	if execResult.Error != nil {
		switch execResult.Error.Type {
		case types.EngineErrorTimeout:
			return allTestsVerdictTimed(tests, types.VerdictTLE, execResult.Error.Message, runPhaseTimeMs(execResult))
		case types.EngineErrorOOM:
			return allTestsVerdictTimed(tests, types.VerdictMLE, execResult.Error.Message, runPhaseTimeMs(execResult))
		default:
			return allTestsVerdictTimed(tests, types.VerdictRE, execResult.Error.Message, runPhaseTimeMs(execResult))
		}
	}

	run := execResult.Run
	if run == nil {
		return allTestsVerdict(tests, types.VerdictRE, "engine returned no run result")
	}

	if !run.Success && !protocol.HasBeginSentinel(run.Stdout) {
		return allTestsVerdictTimed(tests, types.VerdictRE, "candidate crashed before emitting judge output", run.TimeMs)
	}

	parsed := protocol.Parse(run.Stdout)
	if parsed.Err != nil {
		r := allTestsVerdictTimed(tests, types.VerdictRE, fmt.Sprintf("Protocol error: %s", parsed.Err.Kind), run.TimeMs)
		r.UserStdout = parsed.UserStdout
		r.Stderr = run.Stderr
		return r
	}

	return aggregate(ctx, tests, parsed.Output, parsed.UserStdout, run.Stderr)
}

func buildExecutionRequest(problem types.Problem, bundle harness.Bundle, stdin string, language string, numTests int, env map[string]string) types.ExecutionRequest {
	timeLimitMs := problem.EffectiveTimeLimitMs()

	compileTimeout := compileTimeoutScale * timeLimitMs
	if compileTimeout < minCompileTimeoutMs {
		compileTimeout = minCompileTimeoutMs
	}
	runTimeout := timeLimitMs * numTests
	if runTimeout < minRunTimeoutMs {
		runTimeout = minRunTimeoutMs
	}

	var compileSpec *types.CommandSpec
	if bundle.CompileCmd != "" {
		compileSpec = &types.CommandSpec{Cmd: bundle.CompileCmd, TimeoutMs: compileTimeout}
	}

	return types.ExecutionRequest{
		Language: language,
		Files:    bundle.Files,
		Compile:  compileSpec,
		Run: &types.CommandSpec{
			Cmd:       bundle.RunCmd,
			Stdin:     stdin,
			TimeoutMs: runTimeout,
		},
		Limits: types.ResourceLimits{
			MemoryMb: problem.EffectiveMemoryLimitMb(),
		},
		Env: env,
	}
}
