package platform

import "time"

// IdleProvider returns the duration since the last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider. Environments
// without a usable input-activity source report engine.ErrIdleUnsupported
// from every call.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}
