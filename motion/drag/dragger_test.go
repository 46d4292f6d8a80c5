package drag

import (
	"math"
	"testing"
	"time"

	"ethos/motion/frame"
	"ethos/motion/geom"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeSurface struct {
	m      geom.Matrix
	box    geom.Rect // untransformed
	hint   string
	writes int
}

func newSurface(box geom.Rect) *fakeSurface {
	return &fakeSurface{m: geom.Identity(), box: box}
}

func (s *fakeSurface) Transform() geom.Matrix { return s.m }
func (s *fakeSurface) SetTransform(m geom.Matrix) {
	s.m = m
	s.writes++
}
func (s *fakeSurface) WillChange() string     { return s.hint }
func (s *fakeSurface) SetWillChange(v string) { s.hint = v }
func (s *fakeSurface) BoundingBox() geom.Rect { return s.box.Translate(s.m.TX, s.m.TY) }

type boxer geom.Rect

func (b boxer) BoundingBox() geom.Rect { return geom.Rect(b) }

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func ev(k Kind, ms int, x, y float64) Event {
	return Event{Kind: k, At: at(ms), Pointers: []geom.Point{{X: x, Y: y}}}
}

func setup() (*frame.Loop, *fakeSurface, *Dragger) {
	loop := frame.NewLoop(frame.NewManualClock(epoch))
	s := newSurface(geom.RectXYWH(0, 0, 10, 10))
	return loop, s, New(loop, s)
}

func TestAxisXLock(t *testing.T) {
	loop, s, d := setup()
	d.SetAxis(AxisX)

	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerMove, 16, 0, 50))
	d.Handle(ev(PointerMove, 32, 0, 100))
	loop.Step()
	if s.m.TY != 0 || s.m.TX != 0 {
		t.Fatalf("vertical drag with AxisX moved to (%v, %v), want (0, 0)", s.m.TX, s.m.TY)
	}

	d.Handle(ev(PointerMove, 48, 30, 40))
	loop.Step()
	if s.m.TX != 30 || s.m.TY != 0 {
		t.Fatalf("diagonal drag with AxisX moved to (%v, %v), want (30, 0)", s.m.TX, s.m.TY)
	}
}

func TestMoveRenderThrottled(t *testing.T) {
	loop, s, d := setup()
	d.Handle(ev(PointerDown, 0, 0, 0))
	for i := 1; i <= 5; i++ {
		d.Handle(ev(PointerMove, i, float64(i), float64(i)))
	}
	if loop.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", loop.Pending())
	}
	loop.Step()
	if s.writes != 1 {
		t.Fatalf("renders = %d, want 1", s.writes)
	}
	if s.m.TX != 5 || s.m.TY != 5 {
		t.Fatalf("translation = (%v, %v), want (5, 5)", s.m.TX, s.m.TY)
	}
	if s.hint != "transform" {
		t.Fatalf("WillChange() = %q while dragging, want transform", s.hint)
	}
}

func TestDragContinuesFromCurrentTransform(t *testing.T) {
	loop, s, d := setup()
	s.m = geom.MatrixOrIdentity("matrix(1, 0, 0, 1, 20, 30)")
	d.Handle(ev(PointerDown, 0, 100, 100))
	d.Handle(ev(PointerMove, 16, 110, 90))
	loop.Step()
	if s.m.TX != 30 || s.m.TY != 20 {
		t.Fatalf("translation = (%v, %v), want (30, 20)", s.m.TX, s.m.TY)
	}
}

func TestBoundsClampWithRebound(t *testing.T) {
	loop, s, d := setup()
	d.SetRebound(0.5).SetBounds(geom.RectXYWH(0, 0, 100, 100))
	lo, hi, ok := d.Bounds()
	if !ok || lo != (geom.Point{}) || hi != (geom.Point{X: 90, Y: 90}) {
		t.Fatalf("Bounds() = %v, %v, %v, want {0 0}, {90 90}, true", lo, hi, ok)
	}

	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerMove, 16, 80, 0))
	if v := d.Velocity(); v.X != 80 {
		t.Fatalf("Velocity().X = %v, want 80", v.X)
	}
	d.Handle(ev(PointerMove, 32, 120, 0))
	loop.Step()
	if s.m.TX != 90 {
		t.Fatalf("TX = %v, want clamp at 90", s.m.TX)
	}
	if v := d.Velocity(); v.X != -20 {
		t.Fatalf("Velocity().X = %v, want -20", v.X)
	}

	d.Handle(ev(PointerMove, 48, -50, -50))
	loop.Step()
	if s.m.TX != 0 || s.m.TY != 0 {
		t.Fatalf("translation = (%v, %v), want clamp at (0, 0)", s.m.TX, s.m.TY)
	}
}

func TestBoundsSwapWhenSurfaceLarger(t *testing.T) {
	loop := frame.NewLoop(nil)
	s := newSurface(geom.RectXYWH(0, 0, 200, 50))
	d := New(loop, s).SetBoundsFrom(boxer(geom.RectXYWH(0, 0, 100, 100)))
	lo, hi, _ := d.Bounds()
	if lo.X != -100 || hi.X != 0 {
		t.Fatalf("x range = [%v, %v], want [-100, 0]", lo.X, hi.X)
	}
	if lo.Y != 0 || hi.Y != 50 {
		t.Fatalf("y range = [%v, %v], want [0, 50]", lo.Y, hi.Y)
	}

	d.ClearBounds()
	if _, _, ok := d.Bounds(); ok {
		t.Fatalf("Bounds() after ClearBounds reports set")
	}
}

func TestBoundsAccountForTranslation(t *testing.T) {
	loop := frame.NewLoop(nil)
	s := newSurface(geom.RectXYWH(0, 0, 10, 10))
	s.m = geom.Identity().WithTranslation(40, 0)
	d := New(loop, s).SetBounds(geom.RectXYWH(0, 0, 100, 100))
	lo, hi, _ := d.Bounds()
	if lo.X != 0 || hi.X != 90 {
		t.Fatalf("x range = [%v, %v], want [0, 90]", lo.X, hi.X)
	}
}

func TestFlingDecay(t *testing.T) {
	loop, s, d := setup()
	s.hint = "auto"
	d.Fling(geom.Point{X: 10})
	if d.State() != Flinging || s.hint != "transform" {
		t.Fatalf("State() = %v, hint %q, want flinging with transform hint", d.State(), s.hint)
	}

	frames := 0
	for d.State() == Flinging {
		loop.Step()
		frames++
		want := 10 * math.Pow(0.95, float64(frames))
		if got := d.Velocity().X; math.Abs(got-want) > 1e-9 {
			t.Fatalf("frame %d: Velocity().X = %v, want %v", frames, got, want)
		}
		if frames > 1000 {
			t.Fatalf("fling never stopped")
		}
	}
	if frames != 45 {
		t.Fatalf("fling frames = %d, want 45", frames)
	}
	if loop.Pending() != 0 {
		t.Fatalf("Pending() = %d after fling, want 0", loop.Pending())
	}
	if s.hint != "auto" {
		t.Fatalf("WillChange() = %q after fling, want auto", s.hint)
	}
	if s.m.TX <= 0 || s.m.TY != 0 {
		t.Fatalf("translation = (%v, %v), want positive x only", s.m.TX, s.m.TY)
	}
}

func TestReleaseFlings(t *testing.T) {
	_, s, d := setup()
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerMove, 50, 50, 0))
	d.Handle(Event{Kind: PointerUp, At: at(100)})
	if d.State() != Flinging {
		t.Fatalf("State() = %v, want %v", d.State(), Flinging)
	}
	// An up without pointers releases at the last move position.
	if v := d.Velocity(); math.Abs(v.X-50.0/100*16.666) > 1e-9 {
		t.Fatalf("Velocity().X = %v, want %v", v.X, 50.0/100*16.666)
	}
	if s.hint != "transform" {
		t.Fatalf("WillChange() = %q while flinging, want transform", s.hint)
	}
}

func TestReleaseVelocityUsesUpPosition(t *testing.T) {
	_, _, d := setup()
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerUp, 100, 50, 0))
	want := 50.0 / 100 * 16.666
	if v := d.Velocity(); math.Abs(v.X-want) > 1e-9 || d.State() != Flinging {
		t.Fatalf("Velocity().X = %v, State() = %v, want %v flinging", v.X, d.State(), want)
	}
}

func TestSlowReleaseStops(t *testing.T) {
	_, s, d := setup()
	s.hint = "auto"
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerUp, 100, 20, 0))
	if d.State() != Idle {
		t.Fatalf("State() = %v, want %v", d.State(), Idle)
	}
	if s.hint != "auto" {
		t.Fatalf("WillChange() = %q, want auto", s.hint)
	}
}

func TestFlingCutoff(t *testing.T) {
	_, _, d := setup()
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerUp, 300, 200, 0))
	if d.State() != Idle {
		t.Fatalf("long gesture: State() = %v, want %v", d.State(), Idle)
	}

	d.SetFlingCutoff(0)
	d.Handle(ev(PointerDown, 400, 0, 0))
	d.Handle(ev(PointerUp, 700, 200, 0))
	if d.State() != Flinging {
		t.Fatalf("cutoff disabled: State() = %v, want %v", d.State(), Flinging)
	}
}

func TestPointerDownInterruptsFling(t *testing.T) {
	loop, s, d := setup()
	d.Fling(geom.Point{X: 20, Y: 20})
	loop.Step()
	loop.Step()
	x := s.m.TX

	d.Handle(ev(PointerDown, 100, 5, 5))
	if d.State() != Handling {
		t.Fatalf("State() = %v, want %v", d.State(), Handling)
	}
	for i := 0; i < 5; i++ {
		loop.Step()
	}
	if s.m.TX != x {
		t.Fatalf("TX moved to %v after interrupt, want %v", s.m.TX, x)
	}
	if s.hint != "transform" {
		t.Fatalf("WillChange() = %q, want transform", s.hint)
	}

	d.Handle(ev(PointerUp, 500, 5, 5))
	if s.hint != "" {
		t.Fatalf("WillChange() = %q after release, want original empty value", s.hint)
	}
}

func TestFlingRebound(t *testing.T) {
	loop, s, d := setup()
	d.SetRebound(1).SetBounds(geom.RectXYWH(0, 0, 30, 30))
	var hits []Axis
	d.OnRebound(func(a Axis) { hits = append(hits, a) })

	d.Fling(geom.Point{X: 15})
	loop.Step()
	if math.Abs(s.m.TX-14.25) > 1e-9 {
		t.Fatalf("TX = %v, want 14.25", s.m.TX)
	}
	loop.Step()
	if s.m.TX != 20 {
		t.Fatalf("TX = %v, want clamp at 20", s.m.TX)
	}
	if v := d.Velocity().X; v >= 0 {
		t.Fatalf("Velocity().X = %v, want reversed", v)
	}
	if len(hits) != 1 || hits[0] != AxisX {
		t.Fatalf("rebound hits = %v, want [x]", hits)
	}
}

func TestReboundNeedsVelocity(t *testing.T) {
	loop, s, d := setup()
	d.SetRebound(1).SetBounds(geom.RectXYWH(0, 0, 30, 30))
	s.m = s.m.WithTranslation(0, 25)
	var hits []Axis
	d.OnRebound(func(a Axis) { hits = append(hits, a) })

	d.Fling(geom.Point{X: 5})
	loop.Step()
	if s.m.TY != 20 {
		t.Fatalf("TY = %v, want clamp at 20", s.m.TY)
	}
	if len(hits) != 0 {
		t.Fatalf("rebound hits = %v, want none for a still axis", hits)
	}
}

func TestFlingDuringGestureIgnored(t *testing.T) {
	loop, s, d := setup()

	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Fling(geom.Point{X: 12})
	if d.State() != Handling {
		t.Fatalf("State() = %v after Fling mid-gesture, want %v", d.State(), Handling)
	}
	d.Handle(ev(PointerMove, 16, 20, 0))
	loop.Step()
	if s.m.TX != 20 {
		t.Fatalf("TX = %v, want 20", s.m.TX)
	}
	d.Handle(ev(PointerUp, 400, 20, 0))
	if d.State() != Idle {
		t.Fatalf("State() = %v after slow release, want %v", d.State(), Idle)
	}
}

func TestDisabledIsNoop(t *testing.T) {
	loop, s, d := setup()
	d.SetEnabled(false)
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerMove, 16, 50, 50))
	d.Handle(ev(PointerUp, 32, 100, 100))
	d.Fling(geom.Point{X: 50})
	loop.Step()
	if d.State() != Idle || s.writes != 0 || s.hint != "" {
		t.Fatalf("disabled dragger: State() = %v, writes %d, hint %q", d.State(), s.writes, s.hint)
	}
}

func TestEmptyPointerListIgnored(t *testing.T) {
	_, _, d := setup()
	d.Handle(Event{Kind: PointerDown, At: epoch})
	if d.State() != Idle {
		t.Fatalf("State() = %v, want %v", d.State(), Idle)
	}
}

func TestDetach(t *testing.T) {
	loop, s, d := setup()
	s.hint = "scroll-position"
	d.Handle(ev(PointerDown, 0, 0, 0))
	d.Handle(ev(PointerMove, 16, 10, 10))
	d.Detach()

	if loop.Pending() != 0 {
		t.Fatalf("Pending() = %d after Detach, want 0", loop.Pending())
	}
	if s.hint != "scroll-position" {
		t.Fatalf("WillChange() = %q after Detach, want scroll-position", s.hint)
	}
	d.Handle(ev(PointerDown, 32, 0, 0))
	d.Handle(ev(PointerMove, 48, 40, 40))
	loop.Step()
	if s.writes != 0 || d.Enabled() {
		t.Fatalf("detached dragger rendered %d times, Enabled() = %v", s.writes, d.Enabled())
	}
}

func TestStopEndsFling(t *testing.T) {
	loop, s, d := setup()
	s.hint = "auto"
	d.Fling(geom.Point{X: 10})
	loop.Step()
	x := s.m.TX

	d.Stop()
	if d.State() != Idle {
		t.Fatalf("State() = %v after Stop, want idle", d.State())
	}
	if loop.Pending() != 0 {
		t.Fatalf("Pending() = %d after Stop, want 0", loop.Pending())
	}
	if s.hint != "auto" {
		t.Fatalf("WillChange() = %q after Stop, want auto", s.hint)
	}
	loop.Step()
	if s.m.TX != x {
		t.Fatalf("TX = %v after Stop, want %v", s.m.TX, x)
	}
}

func TestSetters(t *testing.T) {
	_, _, d := setup()
	if d.Friction() != DefaultFriction || d.StopVelocity() != DefaultStopVelocity || d.FlingCutoff() != DefaultFlingCutoff {
		t.Fatalf("defaults = %v, %v, %v", d.Friction(), d.StopVelocity(), d.FlingCutoff())
	}
	d.SetFriction(2).SetRebound(-1).SetFlingCutoff(-time.Second).SetAxis(AxisY | 8)
	if d.Friction() != 1 || d.Rebound() != 0 || d.FlingCutoff() != 0 || d.Axis() != AxisY {
		t.Fatalf("clamped = %v, %v, %v, %v", d.Friction(), d.Rebound(), d.FlingCutoff(), d.Axis())
	}
	if AxisBoth.String() != "xy" || Flinging.String() != "flinging" || PointerUp.String() != "up" {
		t.Fatalf("String() mismatch")
	}
}
