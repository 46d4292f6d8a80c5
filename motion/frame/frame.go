// Package frame provides the frame-scheduling primitive the animation and drag
// controllers suspend on.
//
// A Scheduler runs a callback once on the next display refresh, passing the
// refresh timestamp. Two implementations exist: Loop, ticked by a host that owns
// a refresh signal (a window's update loop), and Fixed, which ticks a Loop from
// a ~16ms timer for hosts without one. Hosts pick one at startup.
//
// Callbacks requested while a tick is running are deferred to the next tick, so
// a callback that re-requests itself runs exactly once per refresh.
package frame

import "time"

// Callback is invoked with the timestamp of the refresh it runs in.
type Callback func(now time.Time)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Scheduler schedules callbacks for the next refresh.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// Request schedules cb for the next refresh.
	Request(cb Callback) Handle
	// Cancel drops a pending callback. Unknown or already run handles are ignored.
	Cancel(h Handle)
}

// DefaultInterval is the fallback refresh period (~60Hz).
const DefaultInterval = 16 * time.Millisecond
