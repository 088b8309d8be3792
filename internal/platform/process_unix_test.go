//go:build !windows

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProcessLine(t *testing.T) {
	cases := []struct {
		line     string
		wantPID  int
		wantName string
		wantOK   bool
	}{
		{"  1234 beat_saber.exe", 1234, "beat_saber.exe", true},
		{"42 /usr/bin/some game", 42, "/usr/bin/some game", true},
		{"", 0, "", false},
		{"notapid comm", 0, "", false},
		{"99", 0, "", false},
	}
	for _, tc := range cases {
		pid, name, ok := parseProcessLine(tc.line)
		assert.Equal(t, tc.wantOK, ok, "line=%q", tc.line)
		if tc.wantOK {
			assert.Equal(t, tc.wantPID, pid, "line=%q", tc.line)
			assert.Equal(t, tc.wantName, name, "line=%q", tc.line)
		}
	}
}

func TestMatchesProcessNameIsCaseInsensitive(t *testing.T) {
	assert.True(t, matchesProcessName("Beat_Saber.exe", "beat_saber.exe"))
	assert.True(t, matchesProcessName("beat_saber.exe", "BEAT_SABER.EXE"))
	assert.True(t, matchesProcessName("/opt/vr/superhot.exe", "Superhot.exe"))
	assert.False(t, matchesProcessName("beat_saber.exe", "superhot.exe"))
	assert.False(t, matchesProcessName("/opt/beat_saber.exe/helper", "beat_saber.exe"))
}
