package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

// IdleDuration reads HIDIdleTime (nanoseconds) from the IOHIDSystem entry.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		fields := strings.Fields(line)
		raw := fields[len(fields)-1]
		idleNanos, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime %q: %w", raw, err)
		}
		if idleNanos < 0 {
			idleNanos = 0
		}
		return time.Duration(idleNanos), nil
	}

	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
