package types

// File is one file materialized in an execution workspace.
type File struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	Executable bool   `json:"executable,omitempty"`
}

// CommandSpec describes one phase's command line and its own timeout.
type CommandSpec struct {
	Cmd       string `json:"cmd"`
	Stdin     string `json:"stdin,omitempty"`
	TimeoutMs int    `json:"timeoutMs"`
}

// ResourceLimits bounds one ExecutionRequest's compile and run phases.
type ResourceLimits struct {
	CPUMs     int `json:"cpuMs"`
	MemoryMb  int `json:"memoryMb"`
}

// ExecutionRequest is one compile+run job handed to the execution engine.
// It is short-lived, created fresh per judge call.
type ExecutionRequest struct {
	ExecutionID string            `json:"executionId"`
	Language    string            `json:"language"`
	Files       []File            `json:"files"`
	Compile     *CommandSpec      `json:"compile,omitempty"`
	Run         *CommandSpec      `json:"run"`
	Limits      ResourceLimits    `json:"limits"`
	Env         map[string]string `json:"env,omitempty"`
	Cwd         string            `json:"cwd,omitempty"`
}

// PhaseResult is the outcome of a single compile or run phase.
type PhaseResult struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exitCode"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	TimeMs   int    `json:"timeMs"`
}

// EngineErrorType classifies an infrastructure-level execution failure.
type EngineErrorType string

const (
	EngineErrorTimeout      EngineErrorType = "timeout"
	EngineErrorOOM          EngineErrorType = "oom"
	EngineErrorSandboxError EngineErrorType = "sandbox_error"
)

// EngineError is a categorized engine-level failure, distinct from a
// phase's own PhaseResult.Success=false (which is a candidate-caused
// outcome like a nonzero exit code, not infrastructure failure).
type EngineError struct {
	Type    EngineErrorType `json:"type"`
	Message string          `json:"message"`
}

// ExecutionResult is the execution engine's output for one ExecutionRequest.
type ExecutionResult struct {
	ExecutionID string       `json:"executionId"`
	Compile     *PhaseResult `json:"compile,omitempty"`
	Run         *PhaseResult `json:"run,omitempty"`
	Error       *EngineError `json:"error,omitempty"`
}
