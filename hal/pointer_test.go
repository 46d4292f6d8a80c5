package hal

import (
	"testing"
	"time"
)

func TestPointerTrackerTransitions(t *testing.T) {
	var tr pointerTracker
	now := time.Unix(0, 0)

	steps := []struct {
		x, y    int
		pressed bool
		want    PointerKind
		wantX   int
		ok      bool
	}{
		{x: 1, y: 1, pressed: false, ok: false},
		{x: 2, y: 3, pressed: true, want: PointerDown, wantX: 2, ok: true},
		{x: 2, y: 3, pressed: true, ok: false},
		{x: 5, y: 3, pressed: true, want: PointerMove, wantX: 5, ok: true},
		{x: 9, y: 9, pressed: false, want: PointerUp, wantX: 5, ok: true},
		{x: 9, y: 9, pressed: false, ok: false},
	}
	for i, s := range steps {
		ev, ok := tr.update(now, s.x, s.y, s.pressed)
		if ok != s.ok {
			t.Fatalf("step %d: update() ok = %v, want %v", i, ok, s.ok)
		}
		if !ok {
			continue
		}
		if ev.Kind != s.want || ev.X != s.wantX {
			t.Fatalf("step %d: update() = %+v, want kind %d x %d", i, ev, s.want, s.wantX)
		}
	}
}

func TestPointerTrackerTouchFlag(t *testing.T) {
	tr := pointerTracker{touch: true}
	ev, ok := tr.update(time.Unix(0, 0), 0, 0, true)
	if !ok || !ev.Touch {
		t.Fatalf("update() = %+v, %v, want touch down", ev, ok)
	}
}

func TestHostPointerDrainOrder(t *testing.T) {
	p := newHostPointer()
	for i := 0; i < 3; i++ {
		p.push(PointerEvent{Kind: PointerMove, X: i})
	}

	var xs []int
	n := p.Drain(func(ev PointerEvent) { xs = append(xs, ev.X) })
	if n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	for i, x := range xs {
		if x != i {
			t.Fatalf("Drain() order = %v, want [0 1 2]", xs)
		}
	}
	if n := p.Drain(func(PointerEvent) {}); n != 0 {
		t.Fatalf("Drain() on empty = %d, want 0", n)
	}
}

func TestHostPointerDropsWhenFull(t *testing.T) {
	p := newHostPointer()
	for i := 0; i < pointerSlots+5; i++ {
		p.push(PointerEvent{Kind: PointerMove})
	}
	if got := p.Dropped(); got != 5 {
		t.Fatalf("Dropped() = %d, want 5", got)
	}
	if n := p.Drain(func(PointerEvent) {}); n != pointerSlots {
		t.Fatalf("Drain() = %d, want %d", n, pointerSlots)
	}
}
