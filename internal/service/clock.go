package service

import "time"

// Clock abstracts the wall clock. Every "what day is it" decision in the
// daily log and challenge services goes through it, so day progression
// stays a pure function of (stored state, now).
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day identifier for an instant: stable for
// the whole local day, changes at local midnight.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}
