package app

import (
	"testing"

	"ethos/config"
	"ethos/hal"
	"ethos/motion/drag"
	"ethos/motion/geom"
)

func TestFlickScriptStartsOnBox(t *testing.T) {
	script := FlickScript(320, 240)
	if len(script) != 5 {
		t.Fatalf("len(FlickScript()) = %d, want 5", len(script))
	}
	if script[0].Kind != hal.PointerDown || script[len(script)-1].Kind != hal.PointerUp {
		t.Fatalf("FlickScript() kinds = %v ... %v, want down ... up", script[0].Kind, script[len(script)-1].Kind)
	}
	box := newLayout(320, 240).box
	p := geom.Point{X: float64(script[0].X), Y: float64(script[0].Y)}
	if !box.Contains(p) {
		t.Fatalf("first event %v outside box %v", p, box)
	}
	for i := 1; i < len(script); i++ {
		if script[i].After < script[i-1].After {
			t.Fatalf("event %d After = %v, before event %d", i, script[i].After, i-1)
		}
	}
}

func TestFlickScriptFlings(t *testing.T) {
	r := newRig(t, config.Default())
	r.frame()

	start := r.clock.Now()
	script := FlickScript(320, 240)
	for len(script) > 0 {
		for len(script) > 0 && r.clock.Now().Sub(start) >= script[0].After {
			s := script[0]
			script = script[1:]
			r.pointer(s.Kind, s.X, s.Y)
		}
		r.frame()
	}
	if st := r.s.dragger.State(); st != drag.Flinging {
		t.Fatalf("State() = %v after scripted flick, want flinging", st)
	}
}
