// Package security describes the isolation profile applied to a sandboxed
// command: which syscalls it may make and whether it gets network access.
package security

// IsolationProfile bundles the seccomp filter and network policy for one
// Exec call.
type IsolationProfile struct {
	// SeccompProfile names an entry in Profiles.
	SeccompProfile string
	DisableNetwork bool
}

// DefaultProfileName is the seccomp profile applied when a Config doesn't
// name one explicitly.
const DefaultProfileName = "default"

// Profiles maps profile names to the complete list of syscalls they allow;
// the loader in seccomp_linux.go adds no baseline of its own, so any
// syscall missing from the list kills the process.
var Profiles = map[string][]string{
	// default is deliberately permissive: candidate programs are ordinary
	// user code (compilers, interpreters, compiled binaries), not already
	// constrained to a narrow syscall set. It blocks only the syscall
	// classes with no legitimate use inside a judged submission.
	DefaultProfileName: {
		"read", "write", "open", "openat", "close", "stat", "fstat", "lstat",
		"poll", "lseek", "mmap", "mprotect", "munmap", "brk", "rt_sigaction",
		"rt_sigprocmask", "rt_sigreturn", "ioctl", "pread64", "pwrite64",
		"readv", "writev", "access", "pipe", "select", "sched_yield",
		"mremap", "msync", "mincore", "madvise", "dup", "dup2", "nanosleep",
		"getpid", "clone", "fork", "vfork", "execve", "exit", "wait4",
		"kill", "uname", "fcntl", "getcwd", "chdir", "mkdir", "rmdir",
		"unlink", "readlink", "getdents64", "rename", "mkdirat", "unlinkat",
		"renameat", "futex", "sched_getaffinity", "set_tid_address",
		"set_robust_list", "exit_group", "epoll_create1", "epoll_ctl",
		"epoll_wait", "pipe2", "prlimit64", "getrandom", "openat2",
		"rseq", "clock_gettime", "clock_nanosleep", "gettimeofday",
		"sigaltstack", "arch_prctl", "statx",
	},
}
