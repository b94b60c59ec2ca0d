package clock

import "time"

// Clock abstracts wall-clock access so schedulers can be tested
// against a controllable time source.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() *SystemClock { return &SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
