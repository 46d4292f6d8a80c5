package app

import (
	"ethos/hal"
	"ethos/motion/anim"
	"ethos/motion/drag"
	"ethos/motion/geom"
)

// handlePointer feeds one host pointer event to the dragger. A gesture only
// starts on a press inside the box; the rest of that gesture follows it
// wherever it goes.
func (s *System) handlePointer(ev hal.PointerEvent) {
	p := geom.Point{X: float64(ev.X), Y: float64(ev.Y)}
	var kind drag.Kind
	switch ev.Kind {
	case hal.PointerDown:
		if !s.surface.BoundingBox().Contains(p) {
			s.gesture = false
			return
		}
		s.gesture = true
		kind = drag.PointerDown
		s.printf("down %d,%d", ev.X, ev.Y)
	case hal.PointerMove:
		if !s.gesture {
			return
		}
		kind = drag.PointerMove
	case hal.PointerUp:
		if !s.gesture {
			return
		}
		s.gesture = false
		kind = drag.PointerUp
	default:
		return
	}

	s.dragger.Handle(drag.Event{Kind: kind, At: ev.At, Pointers: []geom.Point{p}})

	if kind == drag.PointerUp {
		if s.dragger.State() == drag.Flinging {
			v := s.dragger.Velocity()
			s.printf("fling %.1f,%.1f", v.X, v.Y)
		} else {
			s.printf("up %d,%d", ev.X, ev.Y)
		}
	}
	s.redraw.Trigger()
}

// handleKeys reads every pending key press.
//
//	space   pause or resume the progress bar
//	r       reload the configuration
//	arrows  fling the box
//	enter   put the box back
//	esc     quit
func (s *System) handleKeys() {
	kbd := s.h.Input().Keyboard()
	if kbd == nil {
		return
	}
	for {
		select {
		case ev := <-kbd.Events():
			if ev.Press {
				s.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (s *System) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeySpace:
		s.togglePause()
		return
	case hal.KeyEscape:
		s.quit = true
		return
	case hal.KeyEnter:
		s.home()
		return
	case hal.KeyLeft:
		s.dragger.Fling(geom.Point{X: -nudge})
	case hal.KeyRight:
		s.dragger.Fling(geom.Point{X: nudge})
	case hal.KeyUp:
		s.dragger.Fling(geom.Point{Y: -nudge})
	case hal.KeyDown:
		s.dragger.Fling(geom.Point{Y: nudge})
	}

	switch ev.Rune {
	case 'r', 'R':
		s.reloadConfig()
	case ' ':
		s.togglePause()
	}
}

func (s *System) togglePause() {
	if s.bar.State() == anim.Playing {
		s.bar.Pause()
		s.printf("bar paused")
	} else {
		s.bar.Play()
		s.printf("bar playing")
	}
}

// home stops any fling and moves the box back to its layout position.
func (s *System) home() {
	if s.dragger.State() == drag.Handling {
		return
	}
	s.dragger.Stop()
	s.surface.SetTransform(geom.Identity())
	s.printf("home")
}

func (s *System) reloadConfig() {
	if s.reload == nil {
		s.printf("reload: no config source")
		return
	}
	cfg, err := s.reload()
	if err == nil {
		err = s.Reload(cfg)
	}
	if err != nil {
		s.log.Warn("reload failed", "err", err)
		s.printf("reload failed")
	}
}
