package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrtimer/internal/ui/preferences"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.yaml")

	saved := preferences.Settings{
		PresetMinutes:        []int{20, 45},
		DefaultCustomMinutes: 90,
		WarningThresholds:    []int{600, 300, 60},
		StartBuffer:          2 * time.Minute,
		TerminateDelay:       10 * time.Second,
		SpeechEnabled:        false,
		AutostartEnabled:     true,
	}
	require.NoError(t, SaveSettings(path, saved))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := `
preset_minutes: [-5, 0, 30]
default_custom_minutes: -1
warning_threshold_seconds: [300, -60]
start_buffer_seconds: -10
terminate_delay_seconds: -1
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, []int{30}, settings.PresetMinutes)
	assert.Equal(t, preferences.DefaultSettings().DefaultCustomMinutes, settings.DefaultCustomMinutes)
	assert.Equal(t, []int{300}, settings.WarningThresholds)
	assert.Zero(t, settings.StartBuffer)
	assert.Zero(t, settings.TerminateDelay)
	assert.True(t, settings.SpeechEnabled, "speech stays on unless explicitly disabled")
}

func TestLoadSettingsEmptyThresholdListDisablesWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warning_threshold_seconds: []\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Empty(t, settings.WarningThresholds)
}

func TestLoadSettingsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))

	settings, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings, "defaults come back alongside the error")
}
