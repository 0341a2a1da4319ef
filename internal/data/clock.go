package data

import "time"

// clock abstracts time.Now so tests can pin row timestamps.
type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
