package core

import "time"

// Throttle reports at most once per interval that some periodic work, such
// as a progress message, is due. It is not safe for concurrent use.
type Throttle struct {
	every time.Duration
	last  time.Time
	now   func() time.Time
}

// NewThrottle returns a Throttle firing at most once per every. A
// non-positive interval means every call fires.
func NewThrottle(every time.Duration) *Throttle {
	return &Throttle{every: every, now: time.Now}
}

// Ready reports whether the interval has passed since it last returned
// true. The first call only starts the clock.
func (t *Throttle) Ready() bool {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return t.every <= 0
	}
	if now.Sub(t.last) < t.every {
		return false
	}
	t.last = now
	return true
}
