package sandbox

// Config configures a local Sandbox implementation.
type Config struct {
	// WorkspaceBase is the root directory under which per-execution
	// workspace directories are created. The engine appends executionId.
	WorkspaceBase string

	// CgroupRoot is the cgroup v2 mount point under which one cgroup
	// directory is created per Exec call. It must be set when EnableCgroup
	// is on: with an empty CgroupRoot every Exec call fails.
	CgroupRoot string

	// EnableCgroup turns on cgroup-based memory limiting (memory.max) and
	// OOM detection; pids.max is written as "max" and no CPU limit is set.
	// Requires a writable cgroup v2 hierarchy at CgroupRoot. When it is
	// off, memory is bounded best-effort via an RLIMIT_AS rlimit only.
	EnableCgroup bool

	// EnableNamespaces turns on mount/pid/uts/ipc/user/net namespace
	// isolation for the executed command.
	EnableNamespaces bool

	// EnableSeccomp turns on the seccomp syscall filter loaded by the
	// sandbox-init re-exec step before the candidate command runs.
	EnableSeccomp bool

	// SeccompProfilePath, when EnableSeccomp is set, names a profile in
	// security.Profiles; empty uses security.DefaultProfileName.
	SeccompProfilePath string

	// StdoutStderrMaxBytes caps how much of a phase's stdout/stderr is
	// read back into the ExecResult; bytes beyond the cap are dropped
	// from the returned strings (the underlying files are not truncated).
	StdoutStderrMaxBytes int64

	// DisableNetwork isolates the command's network namespace when
	// EnableNamespaces is set.
	DisableNetwork bool
}

const defaultStdoutStderrMaxBytes int64 = 64 * 1024

func (c Config) withDefaults() Config {
	if c.StdoutStderrMaxBytes <= 0 {
		c.StdoutStderrMaxBytes = defaultStdoutStderrMaxBytes
	}
	return c
}
