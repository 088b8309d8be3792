package preferences

import (
	"time"

	"vrtimer/internal/core/model"
)

// Settings defines editable operator preferences.
type Settings struct {
	// PresetMinutes are the quick-start session lengths.
	PresetMinutes []int
	// DefaultCustomMinutes pre-fills the custom duration entry.
	DefaultCustomMinutes int
	// WarningThresholds lists remaining-time marks in seconds at which a
	// spoken warning fires.
	WarningThresholds []int
	// StartBuffer is free headset setup time granted on top of the rented
	// duration.
	StartBuffer time.Duration
	// TerminateDelay is the grace period between session end and killing
	// the game process.
	TerminateDelay time.Duration

	SpeechEnabled    bool
	AutostartEnabled bool
}

// DefaultSettings returns the defaults for a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		PresetMinutes:        []int{15, 30, 60},
		DefaultCustomMinutes: 60,
		WarningThresholds:    []int{5 * 60},
		StartBuffer:          0,
		TerminateDelay:       0,
		SpeechEnabled:        true,
		AutostartEnabled:     false,
	}
}

// SessionConfig converts settings to the engine parameters.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		WarningThresholds: append([]int(nil), settings.WarningThresholds...),
		StartBuffer:       settings.StartBuffer,
	}
}

// FinishConfig converts settings to the session-end policy.
func (settings Settings) FinishConfig() model.FinishConfig {
	return model.FinishConfig{
		TerminateDelay: settings.TerminateDelay,
		SpeechEnabled:  settings.SpeechEnabled,
	}
}
