//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// taskkill exits with 128 when no process matched the image name.
const taskkillNotFound = 128

type processTerminator struct{}

func newTerminator() Terminator {
	return processTerminator{}
}

func (processTerminator) Terminate(processName string) (bool, error) {
	if processName == "" {
		return false, fmt.Errorf("terminate: process name is empty")
	}

	// taskkill matches image names case-insensitively.
	command := exec.Command("taskkill", "/IM", processName, "/F")
	output, err := command.CombinedOutput()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == taskkillNotFound {
		return false, nil
	}
	return false, fmt.Errorf("taskkill %s: %w: %s", processName, err, strings.TrimSpace(string(output)))
}
