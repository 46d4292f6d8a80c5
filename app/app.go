// Package app is the motion demo: a draggable box that flings and rebounds
// inside an area, a progress bar animated along a timing curve, a status line
// and an event console, all drawn on the HAL framebuffer.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ethos/config"
	"ethos/hal"
	"ethos/motion"
	"ethos/motion/anim"
	"ethos/motion/drag"
	"ethos/motion/frame"
	"ethos/motion/geom"
	"ethos/motion/style"

	"tinygo.org/x/tinyterm"
)

const (
	// restartDelay is how long a finished progress bar stays full.
	restartDelay = 500 * time.Millisecond

	reboundTone     = 880.0
	reboundDuration = 30 * time.Millisecond

	// nudge is the velocity, in pixels per frame, of a keyboard fling.
	nudge = 12.0
)

// Option customizes a System.
type Option func(*System)

// WithReload sets the function the reload key calls to fetch a new
// configuration.
func WithReload(fn func() (config.Config, error)) Option {
	return func(s *System) { s.reload = fn }
}

// System is the running demo. All methods run on the host's step goroutine.
type System struct {
	h      hal.HAL
	cfg    config.Config
	sched  frame.Scheduler
	fb     hal.Framebuffer
	screen *hal.Displayer
	layout layout
	log    *slog.Logger

	surface *boxSurface
	dragger *drag.Dragger
	bar     *anim.Animation

	console   *tinyterm.Terminal
	redraw    *frame.Throttle
	listeners config.Listeners
	reload    func() (config.Config, error)

	gesture    bool
	lastState  drag.State
	finishedAt time.Time
	rebounds   int
	quit       bool
	failed     error
}

// boxSurface is the dragged box. Every transform write schedules a redraw.
type boxSurface struct {
	*style.Surface
	changed func()
}

func (b *boxSurface) SetTransform(m geom.Matrix) {
	b.Surface.SetTransform(m)
	if b.changed != nil {
		b.changed()
	}
}

// New builds the demo on h. The first frame is drawn on the next refresh.
func New(h hal.HAL, cfg config.Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	sched := h.Frames()
	if sched == nil {
		return nil, errors.New("app: host has no frame scheduler")
	}
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, errors.New("app: host has no RGB565 framebuffer")
	}

	s := &System{
		h:      h,
		cfg:    cfg,
		sched:  sched,
		fb:     fb,
		screen: hal.NewDisplayer(fb),
		layout: newLayout(fb.Width(), fb.Height()),
		log:    motion.Logger().With("component", "app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.redraw = frame.NewThrottle(sched, s.drawFrame)

	prop := cfg.Host.TransformProperty
	if prop == "" {
		prop = style.Detect(style.Known)
	}
	s.surface = &boxSurface{
		Surface: style.NewSurface(prop, s.layout.box),
		changed: s.redraw.Trigger,
	}
	s.dragger = drag.New(sched, s.surface).OnRebound(s.onRebound)
	s.bar = anim.New(sched,
		anim.WithRender(func(float64) { s.redraw.Trigger() }),
		anim.WithOnFinish(func() { s.finishedAt = s.sched.Now() }),
	)

	s.listeners.Register(config.SectionAnimation, s.applyAnimation)
	s.listeners.Register(config.SectionDrag, s.applyDrag)
	s.listeners.Register(config.SectionHost, s.applyHost)
	s.listeners.UpdateAll(cfg)

	s.clear(s.layout.console, colorConsole)
	if !s.layout.console.Empty() {
		s.console = tinyterm.NewTerminal(s.screen.Sub(rectInts(s.layout.console)))
		s.console.Configure(&tinyterm.Config{
			Font:              textFont,
			FontHeight:        textHeight,
			FontOffset:        textOffset,
			UseSoftwareScroll: true,
		})
	}
	s.printf("ethos: %dx%d %s", fb.Width(), fb.Height(), prop)
	s.redraw.Trigger()
	return s, nil
}

// NewStep adapts New to a hal.NewApp.
func NewStep(cfg config.Config, opts ...Option) hal.NewApp {
	return func(h hal.HAL) (hal.Step, error) {
		s, err := New(h, cfg, opts...)
		if err != nil {
			return nil, err
		}
		return s.Step, nil
	}
}

// Step handles queued input and housekeeping for one refresh. Drawing
// happens from the frame scheduler when something changed.
func (s *System) Step(now time.Time) error {
	if s.failed != nil {
		return s.failed
	}
	return s.protect(func() error {
		s.handleKeys()
		if s.quit {
			return hal.ErrQuit
		}
		s.h.Input().Pointer().Drain(s.handlePointer)

		if st := s.dragger.State(); st != s.lastState {
			if st == drag.Idle && s.lastState == drag.Flinging {
				t := s.dragger.Translation()
				s.printf("rest %.0f,%.0f", t.X, t.Y)
			}
			s.lastState = st
			s.redraw.Trigger()
		}

		if s.bar.State() == anim.Finished && now.Sub(s.finishedAt) >= restartDelay {
			s.bar.Play()
		}
		return nil
	})
}

// Reload validates cfg and applies it to every part of the demo.
func (s *System) Reload(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.listeners.UpdateAll(cfg)
	s.cfg = cfg
	s.printf("config reloaded")
	s.redraw.Trigger()
	return nil
}

// Config returns the configuration in effect.
func (s *System) Config() config.Config { return s.cfg }

func (s *System) applyAnimation(c config.Config) {
	a := c.Animation
	s.bar.SetCurve(a.CurveValue()).
		SetDuration(a.Duration).
		SetIterations(a.Iterations).
		Reset(true).
		Play()
}

func (s *System) applyDrag(c config.Config) {
	d := c.Drag
	axis, err := config.ParseAxis(d.Axis)
	if err != nil {
		// Validated configs always parse.
		axis = drag.AxisBoth
	}
	s.dragger.SetAxis(axis).
		SetFriction(d.Friction).
		SetRebound(d.Rebound).
		SetStopVelocity(d.StopVelocity).
		SetFlingCutoff(d.FlingCutoff)
	if d.Bounds.Enabled {
		s.dragger.SetBounds(s.layout.area.Inset(d.Bounds.Inset))
	} else {
		s.dragger.ClearBounds()
	}
}

func (s *System) applyHost(c config.Config) {
	prop := c.Host.TransformProperty
	if c.Host.Hz != s.cfg.Host.Hz || (prop != "" && prop != s.surface.Property()) {
		s.log.Info("host settings take effect on restart", "hz", c.Host.Hz, "transform_property", c.Host.TransformProperty)
	}
}

func (s *System) onRebound(axis drag.Axis) {
	s.rebounds++
	s.printf("rebound %s", axis)
	if err := s.h.Audio().Tone(reboundTone, reboundDuration); err != nil {
		s.log.Warn("tone failed", "err", err)
	}
}

// printf writes one line to the console.
func (s *System) printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.log.Debug("console", "line", line)
	if s.console == nil {
		return
	}
	fmt.Fprint(s.console, "\n"+line)
	s.redraw.Trigger()
}
