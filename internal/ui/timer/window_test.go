package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatClock(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestProgressValue(t *testing.T) {
	assert.Equal(t, 1.0, progressValue(60, 60))
	assert.Equal(t, 0.5, progressValue(30, 60))
	assert.Equal(t, 0.0, progressValue(0, 60))
	assert.Equal(t, 0.0, progressValue(10, 0), "zero total must not divide")
	assert.Equal(t, 1.0, progressValue(90, 60), "mid-extension remaining above total clamps")
}
