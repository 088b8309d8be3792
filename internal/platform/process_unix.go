//go:build !windows

package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

type processTerminator struct{}

func newTerminator() Terminator {
	return processTerminator{}
}

func (processTerminator) Terminate(processName string) (bool, error) {
	if processName == "" {
		return false, fmt.Errorf("terminate: process name is empty")
	}

	output, err := exec.Command("ps", "-eo", "pid=,comm=").Output()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	found := false
	for _, line := range strings.Split(string(output), "\n") {
		pid, name, ok := parseProcessLine(line)
		if !ok || !matchesProcessName(name, processName) {
			continue
		}
		found = true
		if err := syscall.Kill(pid, syscall.SIGKILL); err != nil {
			// The process may have exited between listing and killing.
			if err == syscall.ESRCH {
				continue
			}
			return found, fmt.Errorf("kill %s (pid %d): %w", name, pid, err)
		}
	}
	return found, nil
}

func parseProcessLine(line string) (pid int, name string, ok bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 {
		return 0, "", false
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil || pid <= 0 {
		return 0, "", false
	}
	// The command may itself contain spaces.
	return pid, strings.Join(fields[1:], " "), true
}

// matchesProcessName compares case-insensitively against both the full
// command and its path basename.
func matchesProcessName(candidate, target string) bool {
	if strings.EqualFold(candidate, target) {
		return true
	}
	if index := strings.LastIndexByte(candidate, '/'); index >= 0 {
		return strings.EqualFold(candidate[index+1:], target)
	}
	return false
}
