package platform

import (
	"errors"
	"testing"
)

func TestSingleInstanceLock(t *testing.T) {
	t.Parallel()

	guard, err := AcquireSingleInstance("focusloop-test")
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer guard.Release()

	if guard.Address() == "" {
		t.Error("expected a bound address")
	}

	if _, err := AcquireSingleInstance("focusloop-test"); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second acquire should fail with ErrAlreadyRunning, got %v", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	reacquired, err := AcquireSingleInstance("focusloop-test")
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	reacquired.Release()
}
