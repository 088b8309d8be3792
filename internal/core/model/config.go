package model

import "time"

// SessionConfig carries the engine parameters derived from user settings.
type SessionConfig struct {
	// WarningThresholds lists remaining-time marks, in seconds, at which a
	// spoken warning fires.
	WarningThresholds []int
	// StartBuffer grants free setup time on top of the rented duration.
	StartBuffer time.Duration
}

// FinishConfig controls what happens when a session expires.
type FinishConfig struct {
	// TerminateDelay is the grace period between the finish announcement
	// and killing the game process.
	TerminateDelay time.Duration
	SpeechEnabled  bool
}
