//go:build linux

package sandbox

import (
	"fmt"
	"os"
	"syscall"
)

// MaybeRunInit must be called at the very top of main() for any binary
// that embeds this package's local Linux sandbox. When the process was
// re-exec'd by localSandbox.Exec as the sandbox-init step (marked by
// reexecEnvKey), it loads the seccomp filter named by the profile env var,
// then execs the real command in place of itself and never returns.
// Ordinary invocations of the binary return immediately.
func MaybeRunInit() {
	if os.Getenv(reexecEnvKey) == "" {
		return
	}
	profile := os.Getenv(seccompProfileEnvKey)
	if profile != "" {
		if err := loadSeccompProfile(profile); err != nil {
			fmt.Fprintf(os.Stderr, "sandbox-init: load seccomp profile: %v\n", err)
			os.Exit(127)
		}
	}

	// os.Args[1:] is ["-c", shellCmd] as built by localSandbox.execArgs.
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "sandbox-init: missing command")
		os.Exit(127)
	}
	shPath := "/bin/sh"
	argv := []string{shPath, "-c", os.Args[2]}
	if err := syscall.Exec(shPath, argv, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "sandbox-init: exec: %v\n", err)
		os.Exit(127)
	}
}
