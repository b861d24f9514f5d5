package timer

import (
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{25 * time.Minute, "25:00"},
		{25*time.Minute + 7*time.Second, "25:07"},
		{time.Hour, "1:00:00"},
		{90*time.Minute + 3*time.Second, "1:30:03"},
	}
	for _, testCase := range cases {
		if got := FormatRemaining(testCase.remaining); got != testCase.want {
			t.Errorf("FormatRemaining(%s) = %q, want %q", testCase.remaining, got, testCase.want)
		}
	}
}
