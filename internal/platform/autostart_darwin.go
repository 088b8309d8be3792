//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart installs a per-user launch agent so the timer comes
// up with the operator session.
func (service *osService) EnableAutostart(appName, execPath string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}
	if execPath == "" {
		return fmt.Errorf("autostart: empty exec path")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("autostart: resolve home dir: %w", err)
	}
	agentsDir := filepath.Join(home, "Library", "LaunchAgents")
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		return fmt.Errorf("autostart: create LaunchAgents dir: %w", err)
	}

	label := "club.vrtimer." + launchSlug(appName)
	plistPath := filepath.Join(agentsDir, label+".plist")
	if err := os.WriteFile(plistPath, []byte(launchAgentPlist(label, execPath)), 0o644); err != nil {
		return fmt.Errorf("autostart: write plist: %w", err)
	}
	return nil
}

func (service *osService) DisableAutostart(appName string) error {
	if err := requireAutostartName(appName); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("autostart: resolve home dir: %w", err)
	}
	label := "club.vrtimer." + launchSlug(appName)
	plistPath := filepath.Join(home, "Library", "LaunchAgents", label+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("autostart: remove plist: %w", err)
	}
	return nil
}

func fallbackConfigDir(home string) string {
	return filepath.Join(home, "Library", "Application Support")
}

func launchAgentPlist(label, execPath string) string {
	escape := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, escape(label), escape(execPath))
}
