//go:build linux

package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"judgecore/internal/sandbox/security"
	"judgecore/pkg/logger"

	"go.uber.org/zap"
)

// reexecEnvKey marks a child invocation of the current binary as the
// sandbox-init step: load the seccomp filter, then exec the real command.
// See init_linux.go.
const reexecEnvKey = "JUDGECORE_SANDBOX_INIT"

// seccompProfileEnvKey carries the profile name from Exec through to the
// re-exec'd MaybeRunInit step.
const seccompProfileEnvKey = "JUDGECORE_SECCOMP_PROFILE"

// memoryLimitEnvKey is a reserved env entry the engine uses to pass a
// phase's memory limit through to the sandbox without widening the narrow
// Exec signature; it is stripped before merging into the child's env.
const memoryLimitEnvKey = "JUDGECORE_MEMORY_LIMIT_MB"

type localSandbox struct {
	cfg Config
}

// NewLocal creates a Linux sandbox backed by namespaces, cgroup v2, and an
// optional seccomp filter applied via a self re-exec step.
func NewLocal(cfg Config) (Sandbox, error) {
	cfg = cfg.withDefaults()
	if cfg.WorkspaceBase == "" {
		return nil, fmt.Errorf("workspace base is required")
	}
	return &localSandbox{cfg: cfg}, nil
}

func (s *localSandbox) Mkdir(ctx context.Context, path string, recursive bool) error {
	if recursive {
		return os.MkdirAll(path, 0750)
	}
	return os.Mkdir(path, 0750)
}

func (s *localSandbox) WriteFile(ctx context.Context, path string, content []byte, executable bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}
	mode := os.FileMode(0640)
	if executable {
		mode = 0750
	}
	return os.WriteFile(path, content, mode)
}

func (s *localSandbox) Remove(ctx context.Context, path string) error {
	return os.RemoveAll(path)
}

func (s *localSandbox) Exec(ctx context.Context, shellCmd string, cwd string, env map[string]string, timeoutMs int) (ExecResult, error) {
	memoryMb, _ := strconv.Atoi(env[memoryLimitEnvKey])

	cgroupPath := ""
	cgroupCleanup := func() {}
	var err error
	if s.cfg.EnableCgroup {
		cgroupPath, cgroupCleanup, err = createExecCgroup(s.cfg.CgroupRoot)
		if err != nil {
			return ExecResult{}, fmt.Errorf("create cgroup: %w", err)
		}
		if err := applyCgroupLimits(cgroupPath, memoryMb, 0); err != nil {
			cgroupCleanup()
			return ExecResult{}, fmt.Errorf("apply cgroup limits: %w", err)
		}
	} else if err := applyRlimitMemory(memoryMb); err != nil {
		logger.Warn(ctx, "apply rlimit memory failed", zap.Error(err))
	}
	defer cgroupCleanup()

	args, reexec := s.execArgs(shellCmd)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = cwd
	cmd.Env = mergeEnv(env)
	if reexec {
		cmd.Env = append(cmd.Env, reexecEnvKey+"=1", seccompProfileEnvKey+"="+s.effectiveSeccompProfile())
	}
	cmd.SysProcAttr = buildSysProcAttr(security.IsolationProfile{
		SeccompProfile: s.effectiveSeccompProfile(),
		DisableNetwork: s.cfg.DisableNetwork,
	}, s.cfg.EnableNamespaces)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return ExecResult{}, fmt.Errorf("start command: %w", err)
	}

	if s.cfg.EnableCgroup {
		if err := addProcessToCgroup(cgroupPath, cmd.Process.Pid); err != nil {
			logger.Warn(ctx, "add process to cgroup failed", zap.String("cgroup", cgroupPath), zap.Error(err))
		}
	}

	var timedOut atomic.Bool
	done := make(chan struct{})
	go func() {
		var timer <-chan time.Time
		if timeoutMs > 0 {
			timer = time.After(time.Duration(timeoutMs) * time.Millisecond)
		}
		select {
		case <-timer:
			timedOut.Store(true)
			killProcessGroup(cmd.Process.Pid)
		case <-done:
		}
	}()
	waitErr := cmd.Wait()
	close(done)

	result := ExecResult{
		ExitCode:  exitCodeFromErr(waitErr, cmd.ProcessState),
		Stdout:    capBytes(stdout.String(), s.cfg.StdoutStderrMaxBytes),
		Stderr:    capBytes(stderr.String(), s.cfg.StdoutStderrMaxBytes),
		TimedOut:  timedOut.Load(),
		OOMKilled: s.cfg.EnableCgroup && wasOomKilled(cgroupPath),
	}
	if result.TimedOut {
		result.ExitCode = 124
	}
	return result, nil
}

// execArgs returns the argv to launch and whether it is a self re-exec
// (true) headed for MaybeRunInit, versus a direct shell invocation (false).
func (s *localSandbox) execArgs(shellCmd string) ([]string, bool) {
	if s.cfg.EnableSeccomp {
		if self, err := os.Executable(); err == nil {
			return []string{self, "-c", shellCmd}, true
		}
	}
	return []string{"/bin/sh", "-c", shellCmd}, false
}

func (s *localSandbox) effectiveSeccompProfile() string {
	if !s.cfg.EnableSeccomp {
		return ""
	}
	if s.cfg.SeccompProfilePath != "" {
		return s.cfg.SeccompProfilePath
	}
	return security.DefaultProfileName
}

func mergeEnv(env map[string]string) []string {
	out := os.Environ()
	for k, v := range env {
		if k == memoryLimitEnvKey {
			continue
		}
		out = append(out, k+"="+v)
	}
	return out
}

func capBytes(s string, max int64) string {
	if max <= 0 || int64(len(s)) <= max {
		return s
	}
	return s[:max]
}

func buildSysProcAttr(profile security.IsolationProfile, enableNamespaces bool) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}
	if !enableNamespaces {
		return attr
	}
	cloneFlags := uintptr(syscall.CLONE_NEWNS | syscall.CLONE_NEWPID | syscall.CLONE_NEWUTS | syscall.CLONE_NEWIPC | syscall.CLONE_NEWUSER)
	if profile.DisableNetwork {
		cloneFlags |= syscall.CLONE_NEWNET
	}
	attr.Cloneflags = cloneFlags
	attr.GidMappingsEnableSetgroups = false
	attr.UidMappings = []syscall.SysProcIDMap{{ContainerID: 0, HostID: os.Getuid(), Size: 1}}
	attr.GidMappings = []syscall.SysProcIDMap{{ContainerID: 0, HostID: os.Getgid(), Size: 1}}
	return attr
}

func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func exitCodeFromErr(err error, state *os.ProcessState) int {
	if state != nil {
		return state.ExitCode()
	}
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		return exitErr.ExitCode()
	}
	return -1
}

func asExitError(err error, target **exec.ExitError) bool {
	for err != nil {
		if e, ok := err.(*exec.ExitError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
