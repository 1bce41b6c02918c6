package discovery

import "time"

// Clock supplies the instant that date-range and scope filters are evaluated
// against. The engine reads it once per call.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. Calendar-day comparisons ("today",
// "tomorrow") happen in Location, or in the process's local zone when nil.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
