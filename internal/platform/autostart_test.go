package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaunchSlug(t *testing.T) {
	cases := map[string]string{
		"VRClubTimer":   "vrclubtimer",
		"VR Club Timer": "vr-club-timer",
		"  ":            "vrtimer",
		"":              "vrtimer",
	}
	for input, want := range cases {
		assert.Equal(t, want, launchSlug(input), "input=%q", input)
	}
}

func TestRequireAutostartName(t *testing.T) {
	assert.NoError(t, requireAutostartName("VRClubTimer"))
	assert.Error(t, requireAutostartName(""))
	assert.Error(t, requireAutostartName("   "))
}
