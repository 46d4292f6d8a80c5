package drag

import (
	"math"
	"time"

	"ethos/motion"
	"ethos/motion/frame"
	"ethos/motion/geom"
)

const (
	// DefaultFriction is the fraction of velocity lost per fling frame.
	DefaultFriction = 0.05
	// DefaultStopVelocity ends a fling once both velocity components fall below it.
	DefaultStopVelocity = 1.0
	// DefaultFlingCutoff is the longest gesture that may still fling.
	DefaultFlingCutoff = 250 * time.Millisecond

	// flingThreshold is the release speed, in pixels per 60Hz frame, needed to fling.
	flingThreshold = 6.0
	frameMillis    = 16.666
	hint           = "transform"
)

type sample struct {
	at time.Time
	p  geom.Point
}

// Dragger moves a Surface with the pointer. It is not safe for concurrent use.
type Dragger struct {
	sched   frame.Scheduler
	surface Surface

	axis         Axis
	friction     float64
	decay        float64 // velocity multiplier per fling frame, 1-friction
	rebound      float64
	stopVelocity float64
	flingCutoff  time.Duration
	enabled      bool
	detached     bool
	onRebound    func(Axis)

	state  State
	matrix geom.Matrix
	origin geom.Point
	start  sample
	last   sample

	hasBounds bool
	min, max  geom.Point

	vx, vy float64

	moveRender *frame.Throttle
	fling      frame.Handle

	holdsHint bool
	prevHint  string
}

// New returns an enabled Dragger for surface moving on both axes.
func New(s frame.Scheduler, surface Surface) *Dragger {
	d := &Dragger{
		sched:        s,
		surface:      surface,
		axis:         AxisBoth,
		friction:     DefaultFriction,
		decay:        1 - DefaultFriction,
		stopVelocity: DefaultStopVelocity,
		flingCutoff:  DefaultFlingCutoff,
		enabled:      true,
		matrix:       geom.Identity(),
	}
	d.moveRender = frame.NewThrottle(s, func(time.Time) { d.render() })
	return d
}

func (d *Dragger) SetAxis(a Axis) *Dragger {
	d.axis = a & AxisBoth
	return d
}

// SetFriction sets the fraction of velocity lost each fling frame, clamped to
// [0,1]. Zero keeps velocity forever; one stops a fling on its first frame.
func (d *Dragger) SetFriction(f float64) *Dragger {
	d.friction = clamp01(f)
	d.decay = 1 - d.friction
	return d
}

// SetRebound sets how much velocity survives hitting a bound, clamped to [0,1].
func (d *Dragger) SetRebound(r float64) *Dragger {
	d.rebound = clamp01(r)
	return d
}

func (d *Dragger) SetStopVelocity(v float64) *Dragger {
	d.stopVelocity = math.Abs(v)
	return d
}

// SetFlingCutoff sets the longest gesture that may fling. Zero lets any
// gesture fling regardless of duration.
func (d *Dragger) SetFlingCutoff(c time.Duration) *Dragger {
	if c < 0 {
		c = 0
	}
	d.flingCutoff = c
	return d
}

// SetEnabled turns pointer handling on or off. A running fling is not stopped.
func (d *Dragger) SetEnabled(on bool) *Dragger {
	d.enabled = on
	return d
}

// OnRebound registers fn to be called when a fling hits a bound.
func (d *Dragger) OnRebound(fn func(axis Axis)) *Dragger {
	d.onRebound = fn
	return d
}

func (d *Dragger) Axis() Axis                 { return d.axis }
func (d *Dragger) Friction() float64          { return d.friction }
func (d *Dragger) Rebound() float64           { return d.rebound }
func (d *Dragger) StopVelocity() float64      { return d.stopVelocity }
func (d *Dragger) FlingCutoff() time.Duration { return d.flingCutoff }
func (d *Dragger) Enabled() bool              { return d.enabled && !d.detached }
func (d *Dragger) State() State               { return d.state }
func (d *Dragger) Velocity() geom.Point       { return geom.Point{X: d.vx, Y: d.vy} }
func (d *Dragger) Translation() geom.Point    { return d.matrix.Translation() }

// Bounds returns the allowed translation range, if one is set.
func (d *Dragger) Bounds() (lo, hi geom.Point, ok bool) {
	return d.min, d.max, d.hasBounds
}

// SetBounds limits the surface to the page rectangle r. The allowed
// translation range is computed from the surface's current bounding box and
// translation; on an axis where the surface is larger than r, the range lets
// it scroll across r instead.
func (d *Dragger) SetBounds(r geom.Rect) *Dragger {
	box := d.surface.BoundingBox()
	t := d.surface.Transform().Translation()

	minX, maxX := t.X+r.Left-box.Left, t.X+r.Right-box.Right
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := t.Y+r.Top-box.Top, t.Y+r.Bottom-box.Bottom
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	d.min = geom.Point{X: minX, Y: minY}
	d.max = geom.Point{X: maxX, Y: maxY}
	d.hasBounds = true
	return d
}

// SetBoundsFrom limits the surface to b's bounding box.
func (d *Dragger) SetBoundsFrom(b Boxer) *Dragger {
	return d.SetBounds(b.BoundingBox())
}

func (d *Dragger) ClearBounds() *Dragger {
	d.hasBounds = false
	d.min, d.max = geom.Point{}, geom.Point{}
	return d
}

// Handle dispatches ev to the handler for its kind.
func (d *Dragger) Handle(ev Event) {
	switch ev.Kind {
	case PointerDown:
		d.HandleDown(ev)
	case PointerMove:
		d.HandleMove(ev)
	case PointerUp:
		d.HandleUp(ev)
	}
}

// HandleDown starts a gesture, interrupting any fling.
func (d *Dragger) HandleDown(ev Event) {
	if !d.Enabled() || len(ev.Pointers) == 0 {
		return
	}
	d.stopFling()
	d.state = Handling
	d.start = sample{at: ev.At, p: ev.Pointers[0]}
	d.last = d.start
	d.matrix = d.surface.Transform()
	d.origin = d.matrix.Translation()
	d.vx, d.vy = 0, 0
	d.holdHint()
}

// HandleMove follows the pointer while a gesture is in progress.
func (d *Dragger) HandleMove(ev Event) {
	if !d.Enabled() || d.state != Handling || len(ev.Pointers) == 0 {
		return
	}
	p := ev.Pointers[0]
	delta := p.Sub(d.start.p)
	prev := d.matrix.Translation()
	next := prev
	if d.axis.Has(AxisX) {
		next.X = d.origin.X + delta.X
	}
	if d.axis.Has(AxisY) {
		next.Y = d.origin.Y + delta.Y
	}
	d.vx, d.vy = next.X-prev.X, next.Y-prev.Y
	d.matrix = d.matrix.WithTranslation(next.X, next.Y)
	d.clamp(false)
	d.last = sample{at: ev.At, p: p}
	d.moveRender.Trigger()
}

// HandleUp ends a gesture and flings if the release was fast enough.
func (d *Dragger) HandleUp(ev Event) {
	if !d.Enabled() || d.state != Handling {
		return
	}
	end := d.last
	end.at = ev.At
	if len(ev.Pointers) > 0 {
		end.p = ev.Pointers[0]
	}

	elapsed := end.at.Sub(d.start.at)
	d.vx, d.vy = 0, 0
	if ms := float64(elapsed) / float64(time.Millisecond); ms > 0 {
		dist := end.p.Sub(d.start.p)
		if d.axis.Has(AxisX) {
			d.vx = dist.X / ms * frameMillis
		}
		if d.axis.Has(AxisY) {
			d.vy = dist.Y / ms * frameMillis
		}
	}

	fast := math.Abs(d.vx) >= flingThreshold || math.Abs(d.vy) >= flingThreshold
	quick := d.flingCutoff == 0 || elapsed < d.flingCutoff
	if fast && quick {
		d.startFling()
		return
	}
	d.state = Idle
	d.releaseHint()
}

// Fling launches an inertial fling with velocity v in pixels per frame from
// the surface's current position, as if a gesture had just been released.
// It does nothing while a gesture is being handled.
func (d *Dragger) Fling(v geom.Point) {
	if !d.Enabled() || d.state == Handling {
		return
	}
	d.stopFling()
	if d.state == Idle {
		d.matrix = d.surface.Transform()
	}
	d.vx, d.vy = 0, 0
	if d.axis.Has(AxisX) {
		d.vx = v.X
	}
	if d.axis.Has(AxisY) {
		d.vy = v.Y
	}
	d.holdHint()
	d.startFling()
}

// Stop ends a fling where it is. Gestures in progress are left alone.
func (d *Dragger) Stop() {
	if d.state != Flinging {
		return
	}
	d.stopFling()
	d.releaseHint()
}

// Detach cancels outstanding frames, restores the will-change hint and turns
// every handler into a no-op for good.
func (d *Dragger) Detach() {
	if d.detached {
		return
	}
	d.stopFling()
	d.moveRender.Cancel()
	d.releaseHint()
	d.state = Idle
	d.detached = true
}

func (d *Dragger) startFling() {
	d.state = Flinging
	motion.Logger().Debug("drag: fling", "vx", d.vx, "vy", d.vy)
	d.fling = d.sched.Request(d.flingFrame)
}

func (d *Dragger) stopFling() {
	if d.fling != 0 {
		d.sched.Cancel(d.fling)
		d.fling = 0
	}
	if d.state == Flinging {
		d.state = Idle
	}
}

func (d *Dragger) flingFrame(time.Time) {
	d.fling = 0
	if d.state != Flinging || d.detached {
		return
	}
	d.vx *= d.decay
	d.vy *= d.decay
	t := d.matrix.Translation()
	if d.axis.Has(AxisX) {
		t.X += d.vx
	}
	if d.axis.Has(AxisY) {
		t.Y += d.vy
	}
	d.matrix = d.matrix.WithTranslation(t.X, t.Y)
	d.clamp(true)
	d.render()

	if math.Abs(d.vx) < d.stopVelocity && math.Abs(d.vy) < d.stopVelocity {
		d.state = Idle
		d.releaseHint()
		motion.Logger().Debug("drag: fling stopped", "x", d.matrix.TX, "y", d.matrix.TY)
		return
	}
	d.fling = d.sched.Request(d.flingFrame)
}

// clamp keeps the translation inside the bounds. A clamped axis bounces:
// its velocity is negated and scaled by the rebound. The rebound hook only
// sees axes that were moving.
func (d *Dragger) clamp(flinging bool) {
	if !d.hasBounds {
		return
	}
	t := d.matrix.Translation()
	var clamped, hit Axis
	if x, ok := clampAxis(t.X, d.min.X, d.max.X); ok {
		t.X = x
		if d.vx != 0 {
			hit |= AxisX
		}
		d.vx = -d.vx * d.rebound
		clamped |= AxisX
	}
	if y, ok := clampAxis(t.Y, d.min.Y, d.max.Y); ok {
		t.Y = y
		if d.vy != 0 {
			hit |= AxisY
		}
		d.vy = -d.vy * d.rebound
		clamped |= AxisY
	}
	if clamped == 0 {
		return
	}
	d.matrix = d.matrix.WithTranslation(t.X, t.Y)
	if flinging && hit != 0 && d.onRebound != nil {
		d.onRebound(hit)
	}
}

func clampAxis(v, lo, hi float64) (float64, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, false
}

func (d *Dragger) render() {
	if d.detached {
		return
	}
	d.surface.SetTransform(d.matrix)
}

// holdHint sets the will-change hint, remembering the previous value unless
// this Dragger already holds it.
func (d *Dragger) holdHint() {
	if !d.holdsHint {
		d.prevHint = d.surface.WillChange()
		d.holdsHint = true
	}
	d.surface.SetWillChange(hint)
}

func (d *Dragger) releaseHint() {
	if !d.holdsHint {
		return
	}
	d.surface.SetWillChange(d.prevHint)
	d.holdsHint = false
	d.prevHint = ""
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
