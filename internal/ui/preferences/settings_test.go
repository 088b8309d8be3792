package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionConfigCopiesThresholds(t *testing.T) {
	settings := Settings{
		WarningThresholds: []int{300, 60},
		StartBuffer:       90 * time.Second,
	}

	config := settings.SessionConfig()
	assert.Equal(t, []int{300, 60}, config.WarningThresholds)
	assert.Equal(t, 90*time.Second, config.StartBuffer)

	// The engine keeps the slice for the session lifetime; later edits in
	// the preferences window must not reach it.
	settings.WarningThresholds[0] = 600
	assert.Equal(t, []int{300, 60}, config.WarningThresholds)
}

func TestFinishConfigCarriesTerminationPolicy(t *testing.T) {
	settings := Settings{
		TerminateDelay: 10 * time.Second,
		SpeechEnabled:  true,
	}

	config := settings.FinishConfig()
	assert.Equal(t, 10*time.Second, config.TerminateDelay)
	assert.True(t, config.SpeechEnabled)
}
