package clock

import "time"

// Clock supplies the current UTC instant. Injected everywhere "now" is read
// so expiry and eligibility boundaries can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns a Clock backed by the system wall clock, normalized to UTC.
func New() Clock {
	return realClock{}
}
