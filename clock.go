package linkml

import "time"

// Clock is the collaborator interface date-valued built-ins (today/now)
// go through, mirrored from the expr package's identical
// interface so the root package never needs to import expr just to
// supply a clock.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// systemClock is the production Clock: wall-clock time, truncated to the
// calendar day for Today.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// SystemClock returns the production Clock implementation.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a test fake that always reports t, for deterministic
// expression evaluation in tests.
type FixedClock struct {
	T time.Time
}

func (f FixedClock) Now() time.Time   { return f.T }
func (f FixedClock) Today() time.Time { return f.T }
