package timewarp

import (
	"time"

	"time-warp/internal/models"
)

var nowFunc = time.Now

// SetNowFunc overrides the real clock used as the base of every Clock in this
// package. Passing nil resets it. Tests use this to make relative overrides
// deterministic; production code never calls it.
func SetNowFunc(fn func() time.Time) {
	if fn == nil {
		nowFunc = time.Now
		return
	}
	nowFunc = fn
}

// Clock is the substitutable source of time that application code reads
// through. Only Now (and the Now-derived Since/Until) can be overridden;
// constructing a specific moment or parsing always goes to the real clock.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Until(t time.Time) time.Duration
	Date(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) time.Time
	Unix(sec, nsec int64) time.Time
	Parse(layout, value string) (time.Time, error)
}

// RealClock reads the host wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return nowFunc() }
func (RealClock) Since(t time.Time) time.Duration { return nowFunc().Sub(t) }
func (RealClock) Until(t time.Time) time.Duration { return t.Sub(nowFunc()) }

func (RealClock) Date(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, min, sec, nsec, loc)
}
func (RealClock) Unix(sec, nsec int64) time.Time { return time.Unix(sec, nsec) }
func (RealClock) Parse(layout, value string) (time.Time, error) {
	return time.Parse(layout, value)
}

// AbsoluteClock pins Now to a fixed instant. Everything that is not a "now"
// query delegates to the real clock.
type AbsoluteClock struct {
	at   time.Time
	real RealClock
}

// NewAbsoluteClock creates a clock whose Now always returns at.
func NewAbsoluteClock(at time.Time) AbsoluteClock {
	return AbsoluteClock{at: at}
}

func (c AbsoluteClock) Now() time.Time { return c.at }
func (c AbsoluteClock) Since(t time.Time) time.Duration { return c.at.Sub(t) }
func (c AbsoluteClock) Until(t time.Time) time.Duration { return t.Sub(c.at) }

func (c AbsoluteClock) Date(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) time.Time {
	return c.real.Date(year, month, day, hour, min, sec, nsec, loc)
}
func (c AbsoluteClock) Unix(sec, nsec int64) time.Time { return c.real.Unix(sec, nsec) }
func (c AbsoluteClock) Parse(layout, value string) (time.Time, error) {
	return c.real.Parse(layout, value)
}

// OffsetClock shifts the real clock by a fixed delta. Now is computed fresh on
// every query, so time keeps flowing inside the override.
type OffsetClock struct {
	offset time.Duration
	real   RealClock
}

// NewOffsetClock creates a clock whose Now is the real now plus offset.
func NewOffsetClock(offset time.Duration) OffsetClock {
	return OffsetClock{offset: offset}
}

func (c OffsetClock) Now() time.Time { return c.real.Now().Add(c.offset) }
func (c OffsetClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c OffsetClock) Until(t time.Time) time.Duration { return t.Sub(c.Now()) }

func (c OffsetClock) Date(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) time.Time {
	return c.real.Date(year, month, day, hour, min, sec, nsec, loc)
}
func (c OffsetClock) Unix(sec, nsec int64) time.Time { return c.real.Unix(sec, nsec) }
func (c OffsetClock) Parse(layout, value string) (time.Time, error) {
	return c.real.Parse(layout, value)
}

// clockFor selects the Clock variant for a descriptor.
func clockFor(desc models.OverrideDescriptor) Clock {
	if desc.Mode == models.ModeAbsolute {
		return NewAbsoluteClock(desc.Target())
	}
	return NewOffsetClock(desc.Delta())
}
