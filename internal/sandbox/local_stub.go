//go:build !linux

package sandbox

import (
	"context"
	"fmt"
)

type stubSandbox struct{}

// NewLocal returns a sandbox that fails every call: namespace/cgroup/seccomp
// isolation is Linux-only, mirroring the reference engine's own
// linux-only sandbox implementation.
func NewLocal(cfg Config) (Sandbox, error) {
	return &stubSandbox{}, nil
}

func (s *stubSandbox) Mkdir(ctx context.Context, path string, recursive bool) error {
	return fmt.Errorf("sandbox is only supported on linux")
}

func (s *stubSandbox) WriteFile(ctx context.Context, path string, content []byte, executable bool) error {
	return fmt.Errorf("sandbox is only supported on linux")
}

func (s *stubSandbox) Remove(ctx context.Context, path string) error {
	return fmt.Errorf("sandbox is only supported on linux")
}

func (s *stubSandbox) Exec(ctx context.Context, shellCmd string, cwd string, env map[string]string, timeoutMs int) (ExecResult, error) {
	return ExecResult{}, fmt.Errorf("sandbox is only supported on linux")
}

// MaybeRunInit is a no-op on non-Linux platforms; the seccomp re-exec step
// only exists under the Linux build.
func MaybeRunInit() {}
