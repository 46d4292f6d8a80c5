// Package drag turns pointer gestures into a translation of a surface, with
// axis locking, rectangular bounds, rebound and an inertial fling on release.
//
// A Dragger is driven by calling Handle (or the per-kind handlers) with pointer
// events on the goroutine that ticks its frame.Scheduler. Rendering is the
// surface's business: the Dragger only writes matrices through Surface.
package drag

import (
	"fmt"
	"time"

	"ethos/motion/geom"
)

// Axis selects the axes a Dragger moves along.
type Axis uint

const (
	AxisX Axis = 1 << iota
	AxisY

	AxisBoth = AxisX | AxisY
)

func (a Axis) String() string {
	switch a {
	case 0:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisBoth:
		return "xy"
	default:
		return fmt.Sprintf("Axis(%d)", uint(a))
	}
}

// Has reports whether every axis in b is selected in a.
func (a Axis) Has(b Axis) bool { return a&b == b }

// Kind is a pointer event kind.
type Kind int

const (
	PointerDown Kind = iota + 1
	PointerMove
	PointerUp
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a pointer event. Only the first of Pointers is read; a pointer-up
// may carry none, in which case the last move position is used.
type Event struct {
	Kind     Kind
	At       time.Time
	Pointers []geom.Point
}

// State is the gesture state of a Dragger.
type State int

const (
	Idle State = iota
	Handling
	Flinging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Handling:
		return "handling"
	case Flinging:
		return "flinging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Surface is the dragged element. Transform must return the identity when
// the element has no transform or an unreadable one.
type Surface interface {
	Transform() geom.Matrix
	SetTransform(m geom.Matrix)
	WillChange() string
	SetWillChange(v string)
	BoundingBox() geom.Rect
}

// Boxer is anything with an on-screen bounding box, used as a drag area.
type Boxer interface {
	BoundingBox() geom.Rect
}
