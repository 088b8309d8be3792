package platform

import (
	"fmt"
	"os"
	"strings"
)

// Service groups the OS integration points the club app relies on:
// locating the per-user config directory and registering the timer to
// launch when the operator station boots.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type osService struct{}

// NewService returns the integration for the current OS.
func NewService() Service {
	return &osService{}
}

// GetConfigDir resolves the per-user configuration directory, falling
// back to the conventional location under the home directory when the
// OS lookup fails.
func (service *osService) GetConfigDir() (string, error) {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return fallbackConfigDir(home), nil
}

func requireAutostartName(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("autostart: empty app name")
	}
	return nil
}

// launchSlug turns a display name like "VRClubTimer" into a filesystem
// and registry friendly token.
func launchSlug(appName string) string {
	slug := strings.ToLower(strings.TrimSpace(appName))
	slug = strings.ReplaceAll(slug, " ", "-")
	if slug == "" {
		return "vrtimer"
	}
	return slug
}
