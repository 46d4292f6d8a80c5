package frame

import "time"

// Throttle coalesces any number of Trigger calls into one callback per refresh.
type Throttle struct {
	s  Scheduler
	fn Callback
	h  Handle
}

// NewThrottle returns a Throttle that runs fn on s.
func NewThrottle(s Scheduler, fn Callback) *Throttle {
	return &Throttle{s: s, fn: fn}
}

// Trigger requests fn for the next refresh unless a request is already pending.
func (t *Throttle) Trigger() {
	if t.h != 0 {
		return
	}
	t.h = t.s.Request(t.run)
}

func (t *Throttle) run(now time.Time) {
	t.h = 0
	t.fn(now)
}

// Pending reports whether a callback is scheduled.
func (t *Throttle) Pending() bool { return t.h != 0 }

// Cancel drops the pending callback, if any.
func (t *Throttle) Cancel() {
	if t.h == 0 {
		return
	}
	t.s.Cancel(t.h)
	t.h = 0
}
