//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart drops a desktop entry into the XDG autostart
// directory so the timer comes up with the operator session.
func (service *osService) EnableAutostart(appName, execPath string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}
	if execPath == "" {
		return fmt.Errorf("autostart: empty exec path")
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return fmt.Errorf("autostart: %w", err)
	}
	entryDir := filepath.Join(configDir, "autostart")
	if err := os.MkdirAll(entryDir, 0o755); err != nil {
		return fmt.Errorf("autostart: create entry dir: %w", err)
	}

	entryPath := filepath.Join(entryDir, launchSlug(appName)+".desktop")
	if err := os.WriteFile(entryPath, []byte(desktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *osService) DisableAutostart(appName string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return fmt.Errorf("autostart: %w", err)
	}
	entryPath := filepath.Join(configDir, "autostart", launchSlug(appName)+".desktop")
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: remove desktop entry: %w", err)
	}
	return nil
}

func fallbackConfigDir(home string) string {
	return filepath.Join(home, ".config")
}

func desktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}
	return fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=%s\nX-GNOME-Autostart-enabled=true\nTerminal=false\n",
		appName, execLine)
}
