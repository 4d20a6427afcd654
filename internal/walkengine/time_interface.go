package walkengine

import "time"

// TimeProvider provides the current time for dependency injection.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using the wall clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// StepClock is a TimeProvider for tests: every call to Now advances by Step.
type StepClock struct {
	Current time.Time
	Step    time.Duration
}

// Now returns the current fake time and advances it.
func (c *StepClock) Now() time.Time {
	now := c.Current
	c.Current = c.Current.Add(c.Step)

	return now
}
