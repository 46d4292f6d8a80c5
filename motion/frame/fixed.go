package frame

import (
	"context"
	"time"
)

// Fixed is the fallback Scheduler for hosts without a refresh signal. It ticks
// an internal Loop from a timer so that refreshes land on a fixed interval grid.
type Fixed struct {
	*Loop

	interval time.Duration
	last     time.Time
}

// NewFixed returns a Fixed scheduler. A non-positive interval uses DefaultInterval.
func NewFixed(clock Clock, interval time.Duration) *Fixed {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Fixed{Loop: NewLoop(clock), interval: interval}
}

// Interval returns the refresh period.
func (f *Fixed) Interval() time.Duration { return f.interval }

// next returns how long to wait before the refresh following now and the
// timestamp that refresh reports. Refreshes never come closer than interval.
func (f *Fixed) next(now time.Time) (wait time.Duration, at time.Time) {
	if f.last.IsZero() {
		return 0, now
	}
	wait = f.interval - now.Sub(f.last)
	if wait < 0 {
		wait = 0
	}
	return wait, now.Add(wait)
}

// Run ticks the loop until ctx is done. If after is not nil it runs on the same
// goroutine right after every tick; a non-nil error stops Run and is returned.
func (f *Fixed) Run(ctx context.Context, after func(now time.Time) error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		wait, at := f.next(f.Now())
		f.last = at
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		f.Tick(at)
		if after != nil {
			if err := after(at); err != nil {
				return err
			}
		}
	}
}
