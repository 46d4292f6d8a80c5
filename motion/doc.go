// Package motion is the root of a small timing-curve animation toolkit.
//
// The toolkit computes scalar progress values and 2D translations over time and
// hands them to callbacks; callers decide what to render.
//
// Packages:
//
//	bezier  cubic-Bezier easing solver and the named curve table
//	frame   frame scheduling (host-driven loop, fixed-interval fallback, throttling)
//	anim    timed playback state machine sampling a curve every frame
//	drag    pointer drag controller with axis lock, bounds, rebound and fling
//	geom    2D affine matrix and rectangle values
//	style   string-style transform accessor
//	bits    bit-field helpers
//
// Everything runs on the goroutine that drives the scheduler. Nothing in the
// toolkit starts goroutines on its own except frame.Fixed.Run.
package motion
