//go:build linux

package sandbox

import (
	"fmt"

	"judgecore/internal/sandbox/security"

	seccomp "github.com/seccomp/libseccomp-golang"
)

// loadSeccompProfile installs a syscall allowlist on the calling process,
// defaulting any syscall not in the named profile to SIGSYS (kill). It must
// run in the child after fork and before exec of the candidate command,
// which is why it lives behind the init re-exec step in init_linux.go
// rather than being called from Exec directly.
func loadSeccompProfile(name string) error {
	allowed, ok := security.Profiles[name]
	if !ok {
		return fmt.Errorf("unknown seccomp profile %q", name)
	}

	filter, err := seccomp.NewFilter(seccomp.ActKill)
	if err != nil {
		return fmt.Errorf("create seccomp filter: %w", err)
	}
	defer filter.Release()

	if err := filter.SetNoNewPrivsBit(true); err != nil {
		return fmt.Errorf("set no-new-privs: %w", err)
	}

	for _, name := range allowed {
		call, err := seccomp.GetSyscallFromName(name)
		if err != nil {
			// Syscall name not recognized on this kernel/arch combination;
			// skip it rather than fail the whole profile load.
			continue
		}
		if err := filter.AddRule(call, seccomp.ActAllow); err != nil {
			return fmt.Errorf("add rule for %s: %w", name, err)
		}
	}

	if err := filter.Load(); err != nil {
		return fmt.Errorf("load seccomp filter: %w", err)
	}
	return nil
}
