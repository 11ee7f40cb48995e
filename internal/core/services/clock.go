package services

import "time"

// Clock abstracts time to keep services deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; calendar days follow the local zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
