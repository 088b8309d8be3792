package session

import "time"

// Clock is the engine's time source. The production clock waits on the
// wall clock; tests substitute one that fires immediately.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type wallClock struct{}

func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// WallClock returns the real time source.
func WallClock() Clock {
	return wallClock{}
}
