package hal

import (
	"sync/atomic"
	"time"

	"ethos/internal/mailbox"
)

const pointerSlots = 256

// hostPointer carries pointer events from the input source to the app.
// Sources on other goroutines are fine; events are dropped when the app falls
// a full mailbox behind.
type hostPointer struct {
	mb      *mailbox.Mailbox[PointerEvent]
	dropped atomic.Uint64
}

func newHostPointer() *hostPointer {
	return &hostPointer{mb: mailbox.New[PointerEvent](pointerSlots)}
}

func (p *hostPointer) push(ev PointerEvent) {
	if !p.mb.TrySend(ev) {
		p.dropped.Add(1)
	}
}

func (p *hostPointer) Drain(fn func(PointerEvent)) int { return p.mb.Drain(fn) }

// Dropped returns how many events were lost to a full queue.
func (p *hostPointer) Dropped() uint64 { return p.dropped.Load() }

// pointerTracker turns polled pressed/position samples into transitions.
type pointerTracker struct {
	down  bool
	x, y  int
	touch bool
}

// update compares a sample with the previous one and returns the transition
// it represents, if any. A release reports the last pressed position.
func (t *pointerTracker) update(now time.Time, x, y int, pressed bool) (PointerEvent, bool) {
	switch {
	case pressed && !t.down:
		t.down, t.x, t.y = true, x, y
		return PointerEvent{Kind: PointerDown, At: now, X: x, Y: y, Touch: t.touch}, true
	case pressed && (x != t.x || y != t.y):
		t.x, t.y = x, y
		return PointerEvent{Kind: PointerMove, At: now, X: x, Y: y, Touch: t.touch}, true
	case !pressed && t.down:
		t.down = false
		return PointerEvent{Kind: PointerUp, At: now, X: t.x, Y: t.y, Touch: t.touch}, true
	}
	return PointerEvent{}, false
}
