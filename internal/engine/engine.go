// Package engine turns an ExecutionRequest into an ExecutionResult: it
// materializes files in an isolated workspace, runs an optional compile
// phase followed by the run phase, and always cleans up. It has no
// knowledge of test cases, comparators, or verdicts.
package engine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"judgecore/internal/sandbox"
	"judgecore/internal/types"
	"judgecore/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	skippedRunStderr = "Skipped due to compilation failure"
	minMemoryMb      = 16
)

// Engine executes compile+run jobs against a Sandbox. A single Engine
// instance is serialized: Execute calls must not overlap against the same
// underlying Sandbox.
type Engine struct {
	sb            sandbox.Sandbox
	workspaceBase string
}

// New creates an Engine rooted at workspaceBase, the directory under which
// per-execution workspace directories are created and removed.
func New(sb sandbox.Sandbox, workspaceBase string) *Engine {
	return &Engine{sb: sb, workspaceBase: workspaceBase}
}

// Execute runs req to completion and always returns an ExecutionResult; it
// never propagates an error to the caller, mapping any infrastructure
// failure into the result's Error field instead.
func (e *Engine) Execute(ctx context.Context, req types.ExecutionRequest) types.ExecutionResult {
	executionID := req.ExecutionID
	if executionID == "" {
		executionID = uuid.NewString()
	}
	req.ExecutionID = executionID

	if err := validateRequest(req); err != nil {
		return types.ExecutionResult{
			ExecutionID: executionID,
			Error:       &types.EngineError{Type: types.EngineErrorSandboxError, Message: err.Error()},
		}
	}

	root := filepath.Join(e.workspaceBase, executionID)
	defer func() {
		if err := e.sb.Remove(context.WithoutCancel(ctx), root); err != nil {
			logger.Warn(ctx, "workspace cleanup failed", zap.String("executionId", executionID), zap.Error(err))
		}
	}()

	if err := e.sb.Mkdir(ctx, root, true); err != nil {
		return types.ExecutionResult{
			ExecutionID: executionID,
			Error:       &types.EngineError{Type: types.EngineErrorSandboxError, Message: fmt.Sprintf("create workspace: %v", err)},
		}
	}

	cwd := root
	if req.Cwd != "" {
		cwd = filepath.Join(root, req.Cwd)
	}

	if err := e.materializeFiles(ctx, root, req.Files); err != nil {
		return types.ExecutionResult{
			ExecutionID: executionID,
			Error:       &types.EngineError{Type: types.EngineErrorSandboxError, Message: fmt.Sprintf("materialize files: %v", err)},
		}
	}

	result := types.ExecutionResult{ExecutionID: executionID}

	if req.Compile != nil {
		compileRes, engErr := e.runPhase(ctx, req, cwd, *req.Compile, "")
		result.Compile = &compileRes
		if engErr != nil {
			result.Error = engErr
			return result
		}
		if !compileRes.Success {
			result.Run = &types.PhaseResult{
				Success:  false,
				ExitCode: -1,
				Stderr:   skippedRunStderr,
			}
			return result
		}
	}

	if req.Run == nil {
		result.Error = &types.EngineError{Type: types.EngineErrorSandboxError, Message: "run phase is required"}
		return result
	}

	runRes, engErr := e.runPhase(ctx, req, cwd, *req.Run, req.Run.Stdin)
	result.Run = &runRes
	if engErr != nil {
		result.Error = engErr
	}
	return result
}

func (e *Engine) materializeFiles(ctx context.Context, root string, files []types.File) error {
	for _, f := range files {
		if err := validateRelativePath(f.Path); err != nil {
			return err
		}
		fullPath := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := e.sb.WriteFile(ctx, fullPath, []byte(f.Content), f.Executable); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	return nil
}

// runPhase executes one phase (compile or run), translating sandbox-level
// outcomes into a PhaseResult and, when the failure is infrastructural
// rather than candidate-caused, an EngineError.
func (e *Engine) runPhase(ctx context.Context, req types.ExecutionRequest, cwd string, spec types.CommandSpec, stdin string) (types.PhaseResult, *types.EngineError) {
	shellCmd := spec.Cmd
	if stdin != "" {
		stdinPath := filepath.Join(cwd, ".stdin")
		if err := e.sb.WriteFile(ctx, stdinPath, []byte(stdin), false); err != nil {
			return types.PhaseResult{}, &types.EngineError{Type: types.EngineErrorSandboxError, Message: fmt.Sprintf("write stdin: %v", err)}
		}
		shellCmd = fmt.Sprintf("%s < %s", shellCmd, shellQuote(stdinPath))
	}

	env := map[string]string{}
	for k, v := range req.Env {
		env[k] = v
	}
	if req.Limits.MemoryMb > 0 {
		env["JUDGECORE_MEMORY_LIMIT_MB"] = strconv.Itoa(req.Limits.MemoryMb)
	}

	start := time.Now()
	execRes, err := e.sb.Exec(ctx, shellCmd, cwd, env, spec.TimeoutMs)
	elapsed := int(time.Since(start).Milliseconds())

	if err != nil {
		return types.PhaseResult{
			Success:  false,
			ExitCode: -1,
			Stderr:   err.Error(),
			TimeMs:   elapsed,
		}, &types.EngineError{Type: types.EngineErrorSandboxError, Message: err.Error()}
	}

	phase := types.PhaseResult{
		Success:  execRes.ExitCode == 0,
		ExitCode: execRes.ExitCode,
		Stdout:   execRes.Stdout,
		Stderr:   execRes.Stderr,
		TimeMs:   elapsed,
	}

	if execRes.TimedOut {
		phase.Success = false
		phase.ExitCode = 124
		return phase, &types.EngineError{Type: types.EngineErrorTimeout, Message: "wall-clock timeout exceeded"}
	}
	if execRes.OOMKilled {
		phase.Success = false
		return phase, &types.EngineError{Type: types.EngineErrorOOM, Message: "memory limit exceeded"}
	}
	return phase, nil
}

func validateRequest(req types.ExecutionRequest) error {
	if req.ExecutionID == "" {
		return fmt.Errorf("executionId must not be empty after defaulting")
	}
	for _, f := range req.Files {
		if err := validateRelativePath(f.Path); err != nil {
			return err
		}
	}
	if req.Compile != nil && req.Compile.TimeoutMs <= 0 {
		return fmt.Errorf("compile timeoutMs must be positive")
	}
	if req.Run != nil && req.Run.TimeoutMs <= 0 {
		return fmt.Errorf("run timeoutMs must be positive")
	}
	if req.Limits.MemoryMb != 0 && req.Limits.MemoryMb < minMemoryMb {
		return fmt.Errorf("limits.memoryMb must be >= %d", minMemoryMb)
	}
	return nil
}

func validateRelativePath(p string) error {
	if p == "" {
		return fmt.Errorf("file path must not be empty")
	}
	if path.IsAbs(p) {
		return fmt.Errorf("file path %q must be relative", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return fmt.Errorf("file path %q must not contain ..", p)
		}
	}
	return nil
}

func shellQuote(p string) string {
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
