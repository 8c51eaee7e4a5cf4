// Package schedule resolves where a user is in a workout plan and how the
// plan's exercise targets progress from week to week. Every function works
// on plan values in memory; the only I/O is the log lookup behind LogFinder.
package schedule

import "time"

// Clock supplies the current instant. Callers read it once per request and
// pass the value down so every calculation sees the same "now".
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
