package reminder

import "time"

// Clock abstracts "now" so the scheduling loop can be driven deterministically
// in tests instead of sleeping against the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
