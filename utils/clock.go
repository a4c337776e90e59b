package utils

import "time"

// Clock abstracts the current time so services can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock returns the real current time in UTC.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock is a controllable clock for tests.
type FakeClock struct {
	now time.Time
}

// NewFakeClock creates a FakeClock set to t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// Now returns the fake current time.
func (f *FakeClock) Now() time.Time {
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *FakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
