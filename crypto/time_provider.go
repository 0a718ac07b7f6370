package crypto

import "time"

// TimeProvider abstracts time operations for deterministic testing.
// Implementations must be safe for concurrent use.
type TimeProvider interface {
	Now() time.Time
}

// DefaultTimeProvider uses the standard library time functions.
type DefaultTimeProvider struct{}

// Now returns the current time.
func (DefaultTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider always reports the same instant, for reproducible TOTP
// tests.
type FixedTimeProvider struct {
	Time time.Time
}

// Now returns the fixed instant.
func (f FixedTimeProvider) Now() time.Time { return f.Time }
