// Package traffic converts POI mix and time of day into foot-traffic scores
// and spatial intensity grids.
package traffic

import "time"

// Clock supplies the evaluation instant for time-dependent scoring. Inject a
// fixed clock in tests; production uses SystemClock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the system wall clock.
var SystemClock Clock = ClockFunc(time.Now)
