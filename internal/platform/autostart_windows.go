//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const autostartRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// EnableAutostart records the timer executable under the current user's
// Run key so the station brings it up on login.
func (service *osService) EnableAutostart(appName, execPath string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}
	if execPath == "" {
		return fmt.Errorf("autostart: empty exec path")
	}

	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return runReg("add", autostartRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (service *osService) DisableAutostart(appName string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}
	return runReg("delete", autostartRunKey, "/v", appName, "/f")
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("autostart: reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(home string) string {
	return filepath.Join(home, "AppData", "Roaming")
}
