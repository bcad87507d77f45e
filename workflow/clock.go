package workflow

import "time"

// Timer is a cancellable scheduled call. Each purpose (auto-save, success
// dismissal) holds at most one active handle at a time.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can drive a virtual clock deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
