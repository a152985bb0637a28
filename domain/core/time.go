package core

import (
	"time"
)

// runIDLayout renders a UTC instant as run-YYYYMMDDTHHMMSSZ.
const runIDLayout = "run-20060102T150405Z"

// Clock returns the current time. Services take one so runs can be replayed in tests.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// NewRunID derives a run identifier from a timestamp.
func NewRunID(t time.Time) RunID {
	return RunID(t.UTC().Format(runIDLayout))
}

// ISOTimestamp formats t the way run logs record it, e.g. 2024-05-01T10:00:00.000000Z.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}
