//go:build linux

package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

func createExecCgroup(root string) (string, func(), error) {
	if root == "" {
		return "", func() {}, fmt.Errorf("cgroup root is required")
	}
	dir := fmt.Sprintf("exec-%d", time.Now().UnixNano())
	cgroupPath := filepath.Join(root, dir)
	if err := os.MkdirAll(cgroupPath, 0750); err != nil {
		return "", func() {}, fmt.Errorf("create cgroup dir: %w", err)
	}
	cleanup := func() {
		killPath := filepath.Join(cgroupPath, "cgroup.kill")
		if _, err := os.Stat(killPath); err == nil {
			_ = os.WriteFile(killPath, []byte("1"), 0600)
		}
		_ = os.RemoveAll(cgroupPath)
	}
	return cgroupPath, cleanup, nil
}

func applyCgroupLimits(cgroupPath string, memoryMb int, pids int64) error {
	pidsValue := "max"
	if pids > 0 {
		pidsValue = strconv.FormatInt(pids, 10)
	}
	if err := writeCgroupValue(cgroupPath, "pids.max", pidsValue); err != nil {
		return err
	}
	if memoryMb > 0 {
		bytesLimit := int64(memoryMb) * 1024 * 1024
		if err := writeCgroupValue(cgroupPath, "memory.max", strconv.FormatInt(bytesLimit, 10)); err != nil {
			return err
		}
	}
	return nil
}

func addProcessToCgroup(cgroupPath string, pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid")
	}
	return writeCgroupValue(cgroupPath, "cgroup.procs", strconv.Itoa(pid))
}

func wasOomKilled(cgroupPath string) bool {
	if cgroupPath == "" {
		return false
	}
	data, err := os.ReadFile(filepath.Join(cgroupPath, "memory.events"))
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != "oom_kill" {
			continue
		}
		val, _ := strconv.ParseInt(fields[1], 10, 64)
		return val > 0
	}
	return false
}

func writeCgroupValue(cgroupPath, name, value string) error {
	return os.WriteFile(filepath.Join(cgroupPath, name), []byte(value), 0640)
}

// applyRlimitMemory is the fallback memory bound used when cgroups are
// disabled: an RLIMIT_AS cap on the current process, inherited by children
// started before it execs the real command via the init re-exec step.
func applyRlimitMemory(memoryMb int) error {
	if memoryMb <= 0 {
		return nil
	}
	limit := uint64(memoryMb) * 1024 * 1024
	return unix.Setrlimit(unix.RLIMIT_AS, &unix.Rlimit{Cur: limit, Max: limit})
}
