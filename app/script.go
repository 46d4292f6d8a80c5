package app

import (
	"time"

	"ethos/hal"
)

// FlickScript returns a quick rightward flick of the box for a width x height
// screen, for headless runs to replay through the pointer queue.
func FlickScript(width, height int) []hal.ScriptedPointer {
	l := newLayout(width, height)
	x := int(l.box.Left + l.box.Width()/2)
	y := int(l.box.Top + l.box.Height()/2)
	step := int(l.area.Width() / 10)
	if step < 1 {
		step = 1
	}

	script := []hal.ScriptedPointer{{Kind: hal.PointerDown, X: x, Y: y}}
	for i := 1; i <= 3; i++ {
		script = append(script, hal.ScriptedPointer{
			After: time.Duration(i) * 16 * time.Millisecond,
			Kind:  hal.PointerMove,
			X:     x + i*step,
			Y:     y,
		})
	}
	return append(script, hal.ScriptedPointer{
		After: 64 * time.Millisecond,
		Kind:  hal.PointerUp,
		X:     x + 3*step,
		Y:     y,
	})
}
