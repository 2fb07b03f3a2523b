package tracker

import "time"

// Clock supplies the current instant. The engines take one so tests can pin
// time instead of overriding the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
