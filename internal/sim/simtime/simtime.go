// Package simtime provides the minute-granularity time model shared by the
// command pipeline.
//
// Simulation time counts whole seconds since the Unix epoch. Components in
// this repository never read the wall clock directly; the current simulation
// instant is always supplied by a Clock owned by the caller, which keeps
// decoding deterministic and replayable.
package simtime

import "time"

// Time is an instant on the simulation timeline.
type Time struct {
	unix int64
}

// FromUnix returns the instant sec seconds after the Unix epoch.
func FromUnix(sec int64) Time {
	return Time{unix: sec}
}

// FromTime converts a wall-clock time, truncating sub-second precision.
func FromTime(t time.Time) Time {
	return Time{unix: t.Unix()}
}

// Unix reports the instant as seconds since the Unix epoch.
func (t Time) Unix() int64 {
	return t.unix
}

// Add advances the instant by d. Sub-second remainders are truncated.
func (t Time) Add(d time.Duration) Time {
	return Time{unix: t.unix + int64(d/time.Second)}
}

// Before reports whether t precedes u on the timeline.
func (t Time) Before(u Time) bool {
	return t.unix < u.unix
}

// Minutes converts a whole-minute count into a duration. Vector records and
// intervention plans express every span of time in minutes.
func Minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// Clock supplies the current simulation instant.
type Clock interface {
	Now() Time
}

// Fixed returns a Clock frozen at t.
func Fixed(t Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t Time
}

func (c fixedClock) Now() Time {
	return c.t
}

// System returns a Clock backed by the wall clock. It exists for tools that
// decode against the present moment; the decoder itself never constructs one.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() Time {
	return FromTime(time.Now())
}
