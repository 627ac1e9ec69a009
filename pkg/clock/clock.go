// Package clock provides a small time source abstraction so that due-event
// detection and arbitration can be tested deterministically. Scheduler
// packages never call time.Now() directly; a Clock is injected instead.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual system time. Use at application entry points.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same time. Use for deterministic tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed time.
func (c FixedClock) Now() time.Time {
	return c.T
}

// FuncClock wraps a function as a Clock, for tests that advance time
// between calls.
type FuncClock func() time.Time

// Now returns the wrapped function's time.
func (f FuncClock) Now() time.Time {
	return f()
}
