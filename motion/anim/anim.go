// Package anim plays a timing curve over a duration, delivering the eased
// progress to a render callback once per frame.
package anim

import (
	"time"

	"ethos/motion"
	"ethos/motion/bezier"
	"ethos/motion/frame"
)

// Infinite repeats an animation until it is paused or reset.
const Infinite = -1

// DefaultDuration is used when no duration is configured.
const DefaultDuration = 500 * time.Millisecond

// State is the playback state of an Animation.
type State int

const (
	Idle State = iota
	Playing
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Option configures an Animation at construction.
type Option func(*Animation)

func WithCurve(c bezier.Curve) Option      { return func(a *Animation) { a.SetCurve(c) } }
func WithDuration(d time.Duration) Option  { return func(a *Animation) { a.SetDuration(d) } }
func WithIterations(n int) Option          { return func(a *Animation) { a.SetIterations(n) } }
func WithRender(fn func(x float64)) Option { return func(a *Animation) { a.SetRenderCallback(fn) } }
func WithOnFinish(fn func()) Option        { return func(a *Animation) { a.SetOnFinishListener(fn) } }

// Animation is a timed playback of a curve. All methods and callbacks must run
// on the goroutine that drives the scheduler.
type Animation struct {
	sched frame.Scheduler

	curve      bezier.Curve
	duration   time.Duration
	iterations int
	render     func(x float64)
	onFinish   func()

	state     State
	start     time.Time
	end       time.Time
	startFrom time.Duration
	remaining int
	progress  float64

	// gen identifies the current frame chain. Frames from an older chain stop.
	gen    uint64
	handle frame.Handle
}

// New returns an idle Animation: linear curve, 500ms, one iteration.
func New(s frame.Scheduler, opts ...Option) *Animation {
	a := &Animation{
		sched:      s,
		curve:      bezier.Linear,
		duration:   DefaultDuration,
		iterations: 1,
		remaining:  1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Animation) SetCurve(c bezier.Curve) *Animation {
	a.curve = c
	return a
}

// SetDuration sets the length of one iteration. Non-positive values are ignored.
func (a *Animation) SetDuration(d time.Duration) *Animation {
	if d > 0 {
		a.duration = d
	}
	return a
}

// SetIterations sets the iteration count and resets the remaining count.
// Counts below one other than Infinite are treated as one.
func (a *Animation) SetIterations(n int) *Animation {
	if n < 1 && n != Infinite {
		n = 1
	}
	a.iterations = n
	a.remaining = n
	return a
}

func (a *Animation) SetRenderCallback(fn func(x float64)) *Animation {
	a.render = fn
	return a
}

// SetOnFinishListener sets the callback fired once when the last iteration ends.
func (a *Animation) SetOnFinishListener(fn func()) *Animation {
	a.onFinish = fn
	return a
}

func (a *Animation) State() State             { return a.state }
func (a *Animation) Curve() bezier.Curve      { return a.curve }
func (a *Animation) Duration() time.Duration  { return a.duration }
func (a *Animation) Iterations() int          { return a.iterations }
func (a *Animation) IterationsRemaining() int { return a.remaining }

// Progress returns the last value delivered to the render callback.
func (a *Animation) Progress() float64 { return a.progress }

// End returns the time the current iteration is due to end.
func (a *Animation) End() time.Time { return a.end }

// Play starts or resumes playback and renders the first frame immediately.
// A paused animation resumes where it stopped, a finished one starts over, and
// a playing one restarts its clock.
func (a *Animation) Play() *Animation {
	if a.state == Finished {
		a.Reset(true)
	}
	now := a.sched.Now()
	if a.state == Paused {
		a.start = now.Add(-a.startFrom)
	} else {
		a.start = now
	}
	a.end = a.start.Add(a.duration)
	a.state = Playing
	a.sched.Cancel(a.handle)
	a.handle = 0
	a.gen++
	motion.Logger().Debug("anim: play", "duration", a.duration, "remaining", a.remaining)

	a.frame(a.gen, now)
	return a
}

// Pause freezes playback. It does nothing unless the animation is playing.
func (a *Animation) Pause() *Animation {
	if a.state != Playing {
		return a
	}
	a.startFrom = a.sched.Now().Sub(a.start)
	a.state = Paused
	a.sched.Cancel(a.handle)
	a.handle = 0
	motion.Logger().Debug("anim: pause", "at", a.startFrom)
	return a
}

// Reset stops playback and returns to Idle. With resetIterations the
// remaining iteration count is restored.
func (a *Animation) Reset(resetIterations bool) *Animation {
	a.start = time.Time{}
	a.end = time.Time{}
	a.startFrom = 0
	a.state = Idle
	a.sched.Cancel(a.handle)
	a.handle = 0
	a.gen++
	if resetIterations {
		a.remaining = a.iterations
	}
	return a
}

func (a *Animation) frame(gen uint64, now time.Time) {
	if gen != a.gen || a.state != Playing {
		return
	}
	a.handle = 0

	elapsed := now.Sub(a.start)
	pos := float64(elapsed) / float64(a.duration)
	switch {
	case pos < 0:
		pos = 0
	case pos > 1:
		pos = 1
	}
	x := a.curve.Solve(pos, bezier.SolveEpsilon(a.duration))
	a.progress = x
	if a.render != nil {
		a.render(x)
	}
	// The render callback may have paused, reset or replayed us.
	if gen != a.gen || a.state != Playing {
		return
	}

	if elapsed < a.duration {
		a.handle = a.sched.Request(func(now time.Time) { a.frame(gen, now) })
		return
	}

	if a.remaining > 0 {
		a.remaining--
	}
	if a.remaining == 0 {
		a.state = Finished
		motion.Logger().Debug("anim: finished", "iterations", a.iterations)
		if a.onFinish != nil {
			a.onFinish()
		}
		return
	}
	a.Reset(false)
	a.Play()
}
