package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"vrtimer/internal/ui/preferences"
)

type yamlSettings struct {
	PresetMinutes           []int `yaml:"preset_minutes"`
	DefaultCustomMinutes    int   `yaml:"default_custom_minutes"`
	WarningThresholdSeconds []int `yaml:"warning_threshold_seconds"`
	StartBufferSeconds      int   `yaml:"start_buffer_seconds"`
	TerminateDelaySeconds   int   `yaml:"terminate_delay_seconds"`
	SpeechEnabled           *bool `yaml:"speech_enabled"`
	AutostartEnabled        bool  `yaml:"autostart_enabled"`
}

// LoadSettings reads operator preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes operator preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	speechEnabled := settings.SpeechEnabled
	fileData := yamlSettings{
		PresetMinutes:           settings.PresetMinutes,
		DefaultCustomMinutes:    settings.DefaultCustomMinutes,
		WarningThresholdSeconds: settings.WarningThresholds,
		StartBufferSeconds:      int(settings.StartBuffer / time.Second),
		TerminateDelaySeconds:   int(settings.TerminateDelay / time.Second),
		SpeechEnabled:           &speechEnabled,
		AutostartEnabled:        settings.AutostartEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if presets := positiveValues(fileData.PresetMinutes); len(presets) > 0 {
		settings.PresetMinutes = presets
	}
	if fileData.DefaultCustomMinutes > 0 {
		settings.DefaultCustomMinutes = fileData.DefaultCustomMinutes
	}
	if fileData.WarningThresholdSeconds != nil {
		// An explicit empty list disables warnings entirely.
		settings.WarningThresholds = positiveValues(fileData.WarningThresholdSeconds)
	}
	if fileData.StartBufferSeconds > 0 {
		settings.StartBuffer = time.Duration(fileData.StartBufferSeconds) * time.Second
	}
	if fileData.TerminateDelaySeconds > 0 {
		settings.TerminateDelay = time.Duration(fileData.TerminateDelaySeconds) * time.Second
	}
	if fileData.SpeechEnabled != nil {
		settings.SpeechEnabled = *fileData.SpeechEnabled
	}
	settings.AutostartEnabled = fileData.AutostartEnabled
}

func positiveValues(values []int) []int {
	filtered := make([]int, 0, len(values))
	for _, value := range values {
		if value > 0 {
			filtered = append(filtered, value)
		}
	}
	return filtered
}
