package frame

import (
	"sync"
	"time"
)

type entry struct {
	h  Handle
	cb Callback
}

// Loop is a Scheduler ticked by its host, once per display refresh.
//
// Request and Cancel may be called from any goroutine; callbacks only run inside
// Tick, on the goroutine that calls it.
type Loop struct {
	clock Clock

	mu      sync.Mutex
	next    Handle
	queue   []entry
	running []entry
	ticks   uint64
}

// NewLoop returns a Loop reading time from clock. A nil clock uses SystemClock.
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{clock: clock}
}

func (l *Loop) Now() time.Time { return l.clock.Now() }

func (l *Loop) Request(cb Callback) Handle {
	if cb == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := l.next
	l.queue = append(l.queue, entry{h: h, cb: cb})
	return h
}

func (l *Loop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.queue {
		if l.queue[i].h == h {
			l.queue[i].cb = nil
			return
		}
	}
	for i := range l.running {
		if l.running[i].h == h {
			l.running[i].cb = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.queue {
		if e.cb != nil {
			n++
		}
	}
	return n
}

// Ticks returns how many times Tick has run.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Tick runs every callback requested before this call, in request order, and
// returns how many ran.
func (l *Loop) Tick(now time.Time) int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.running = batch
	l.ticks++
	l.mu.Unlock()

	ran := 0
	for i := range batch {
		l.mu.Lock()
		cb := batch[i].cb
		batch[i].cb = nil
		l.mu.Unlock()
		if cb == nil {
			continue
		}
		cb(now)
		ran++
	}

	l.mu.Lock()
	l.running = nil
	l.mu.Unlock()
	return ran
}

// Step ticks the loop at the clock's current time.
func (l *Loop) Step() int {
	return l.Tick(l.Now())
}
