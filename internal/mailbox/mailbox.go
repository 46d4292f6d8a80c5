// Package mailbox is a bounded multi-producer, single-consumer queue used to
// hand host input to the goroutine that runs the frame loop.
package mailbox

import (
	"runtime"
	"sync/atomic"
)

// DefaultSlots is the capacity used when New is given a non-positive size.
const DefaultSlots = 64

type cell[T any] struct {
	// seq is the head position a producer may claim this cell at; seq == pos+1
	// marks it readable by the consumer at pos.
	seq atomic.Uint32
	v   T
}

// Mailbox is a fixed-size MPSC queue. Any number of goroutines may send; only
// one may receive. It does not allocate after New.
type Mailbox[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	mask  uint32
	cells []cell[T]
}

// New returns a Mailbox holding at least slots values, rounded up to a power
// of two no smaller than 2.
func New[T any](slots int) *Mailbox[T] {
	if slots <= 0 {
		slots = DefaultSlots
	}
	n := 2
	for n < slots {
		n <<= 1
	}
	mb := &Mailbox[T]{mask: uint32(n - 1), cells: make([]cell[T], n)}
	for i := range mb.cells {
		mb.cells[i].seq.Store(uint32(i))
	}
	return mb
}

// Cap returns the number of slots.
func (mb *Mailbox[T]) Cap() int { return len(mb.cells) }

// Len returns the number of queued values. It is a snapshot.
func (mb *Mailbox[T]) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}

// TrySend attempts to enqueue v, returning false if the mailbox is full.
func (mb *Mailbox[T]) TrySend(v T) bool {
	for {
		head := mb.head.Load()
		c := &mb.cells[head&mb.mask]
		diff := int32(c.seq.Load() - head)
		switch {
		case diff == 0:
			// Reserve the slot, then publish it.
			if mb.head.CompareAndSwap(head, head+1) {
				c.v = v
				c.seq.Store(head + 1)
				return true
			}
		case diff < 0:
			return false
		}
		runtime.Gosched()
	}
}

// Send enqueues v, blocking until it succeeds.
func (mb *Mailbox[T]) Send(v T) {
	for !mb.TrySend(v) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one value, returning false if empty.
func (mb *Mailbox[T]) TryRecv() (T, bool) {
	var zero T
	tail := mb.tail.Load()
	c := &mb.cells[tail&mb.mask]
	if int32(c.seq.Load()-(tail+1)) < 0 {
		return zero, false
	}
	v := c.v
	c.v = zero
	c.seq.Store(tail + mb.mask + 1)
	mb.tail.Store(tail + 1)
	return v, true
}

// Recv blocks until one value is available.
func (mb *Mailbox[T]) Recv() T {
	for {
		v, ok := mb.TryRecv()
		if ok {
			return v
		}
		runtime.Gosched()
	}
}

// Drain hands every queued value to fn in order and returns how many there were.
func (mb *Mailbox[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := mb.TryRecv()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}
