// Package sandbox exposes the isolated-filesystem execution capability the
// engine runs compile/run phases against. It is treated as an external
// collaborator: mkdir, writeFile, and a serialized exec with a wall-clock
// timeout.
package sandbox

import "context"

// ExecResult is the outcome of one Exec call.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// TimedOut reports whether the wall-clock timeout tripped the kill
	// path. When true, ExitCode is 124 per the engine's reserved code.
	TimedOut bool
	// OOMKilled reports whether the process was terminated for exceeding
	// its memory cap, when the implementation can detect it.
	OOMKilled bool
}

// Sandbox is the narrow capability the execution engine runs phases
// against. A single Sandbox instance is serialized: callers must not issue
// concurrent Exec calls against the same instance.
type Sandbox interface {
	// Mkdir creates path, and its parents if recursive is true.
	Mkdir(ctx context.Context, path string, recursive bool) error
	// WriteFile writes content to path, creating parent directories as
	// needed. When executable is true the file is given execute permission.
	WriteFile(ctx context.Context, path string, content []byte, executable bool) error
	// Exec runs shellCmd with cwd as its working directory and env merged
	// over the process environment, enforcing timeoutMs as a wall-clock
	// deadline. It never returns an error for a candidate-caused failure
	// (nonzero exit, crash, timeout) — those are reported via ExecResult.
	// A non-nil error indicates an infrastructure fault preventing the
	// command from running at all.
	Exec(ctx context.Context, shellCmd string, cwd string, env map[string]string, timeoutMs int) (ExecResult, error)
	// Remove deletes path and everything under it. Cleanup failures are
	// the caller's concern to log; Remove itself reports the error.
	Remove(ctx context.Context, path string) error
}
