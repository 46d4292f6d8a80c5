package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFixedNext(t *testing.T) {
	f := NewFixed(NewManualClock(epoch), 0)
	if f.Interval() != DefaultInterval {
		t.Fatalf("Interval() = %v, want %v", f.Interval(), DefaultInterval)
	}

	wait, at := f.next(epoch)
	if wait != 0 || !at.Equal(epoch) {
		t.Fatalf("first next() = (%v, %v), want (0, %v)", wait, at, epoch)
	}

	f.last = epoch
	wait, at = f.next(epoch.Add(4 * time.Millisecond))
	if wait != 12*time.Millisecond {
		t.Fatalf("next() wait = %v, want 12ms", wait)
	}
	if want := epoch.Add(16 * time.Millisecond); !at.Equal(want) {
		t.Fatalf("next() at = %v, want %v", at, want)
	}

	wait, _ = f.next(epoch.Add(40 * time.Millisecond))
	if wait != 0 {
		t.Fatalf("late next() wait = %v, want 0", wait)
	}
}

func TestFixedRunTicksUntilError(t *testing.T) {
	f := NewFixed(nil, time.Millisecond)
	frames := 0
	var cb Callback
	cb = func(time.Time) {
		frames++
		f.Request(cb)
	}
	f.Request(cb)

	stop := errors.New("stop")
	afters := 0
	err := f.Run(context.Background(), func(time.Time) error {
		afters++
		if afters == 5 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Run() = %v, want %v", err, stop)
	}
	if frames != 5 {
		t.Fatalf("frames = %d, want 5", frames)
	}
}

func TestFixedRunStopsOnContext(t *testing.T) {
	f := NewFixed(nil, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := f.Run(ctx, func(time.Time) error {
		ticks++
		if ticks == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}

func TestFixedIsScheduler(t *testing.T) {
	var _ Scheduler = NewFixed(nil, 0)
	var _ Scheduler = NewLoop(nil)
}
